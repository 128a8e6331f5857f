package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/FishWY/lunwen-workspace/internal/dto"
	"github.com/FishWY/lunwen-workspace/pkg/events"
	pktNats "github.com/FishWY/lunwen-workspace/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	PublishTextRefreshed(ctx context.Context, workspaceId uuid.UUID, status string, chars int)
	PublishMindmapGenerated(ctx context.Context, workspaceId uuid.UUID, nodeCount int, fallback bool)
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
	natsPub   *pktNats.Publisher
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, natsPub *pktNats.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		natsPub:   natsPub,
	}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topicName, msg)
}

// PublishTextRefreshed announces a (re-)extraction. Failures are logged, not
// returned; events are auxiliary to the request that produced them.
func (s *publisherService) PublishTextRefreshed(ctx context.Context, workspaceId uuid.UUID, status string, chars int) {
	s.publishWorkspaceEvent(ctx, dto.WorkspaceEventMessage{
		Type:        events.TypeTextRefreshed,
		WorkspaceId: workspaceId,
		TextStatus:  status,
		Chars:       chars,
	})
	s.mirrorToNats(ctx, events.NewTextRefreshed(workspaceId.String(), status, chars))
}

func (s *publisherService) PublishMindmapGenerated(ctx context.Context, workspaceId uuid.UUID, nodeCount int, fallback bool) {
	s.publishWorkspaceEvent(ctx, dto.WorkspaceEventMessage{
		Type:        events.TypeMindmapGenerated,
		WorkspaceId: workspaceId,
		NodeCount:   nodeCount,
		Fallback:    fallback,
	})
	s.mirrorToNats(ctx, events.NewMindmapGenerated(workspaceId.String(), nodeCount, fallback))
}

func (s *publisherService) publishWorkspaceEvent(ctx context.Context, payload dto.WorkspaceEventMessage) {
	msgJson, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WARN] Failed to marshal %s event: %v", payload.Type, err)
		return
	}
	if err := s.Publish(ctx, msgJson); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", payload.Type, err)
	}
}

func (s *publisherService) mirrorToNats(ctx context.Context, evt events.Event) {
	if s.natsPub == nil {
		return
	}
	// Bounded so a slow NATS server never stalls a request goroutine.
	natsCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.natsPub.Publish(natsCtx, evt); err != nil {
		log.Printf("[WARN] Failed to mirror %s event to NATS: %v", evt.EventType(), err)
	}
}
