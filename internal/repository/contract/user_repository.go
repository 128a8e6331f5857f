package contract

import (
	"context"

	"github.com/FishWY/lunwen-workspace/internal/entity"
	"github.com/FishWY/lunwen-workspace/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)

	// UpsertByEmail returns the existing user for the email or creates one.
	// Used to provision the shared anonymous user on userless uploads.
	UpsertByEmail(ctx context.Context, user *entity.User) error
}
