package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// TextCacheRepository keeps recently extracted PDF text in memory so deep
// dive and chat requests don't hit the database (or re-run extraction) for
// every question about the same document.
type TextCacheRepository struct {
	cache *cache.Cache
}

func NewTextCacheRepository() *TextCacheRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &TextCacheRepository{
		cache: c,
	}
}

func (r *TextCacheRepository) Save(workspaceID, text string) {
	r.cache.Set(workspaceID, text, cache.DefaultExpiration)
}

func (r *TextCacheRepository) Get(workspaceID string) (string, bool) {
	if x, found := r.cache.Get(workspaceID); found {
		return x.(string), true
	}
	return "", false
}

func (r *TextCacheRepository) Delete(workspaceID string) {
	r.cache.Delete(workspaceID)
}
