package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/FishWY/lunwen-workspace/internal/dto"
	"github.com/FishWY/lunwen-workspace/internal/repository/memory"
	"github.com/FishWY/lunwen-workspace/internal/repository/specification"
	"github.com/FishWY/lunwen-workspace/internal/repository/unitofwork"
	"github.com/FishWY/lunwen-workspace/internal/websocket"
	"github.com/FishWY/lunwen-workspace/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	textCache  *memory.TextCacheRepository
	wsHub      *websocket.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	textCache *memory.TextCacheRepository,
	wsHub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		textCache:  textCache,
		wsHub:      wsHub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.WorkspaceEventMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	switch payload.Type {
	case events.TypeTextRefreshed:
		cs.handleTextRefreshed(ctx, payload)
	case events.TypeMindmapGenerated:
		// Nothing to warm; just forward progress below.
	default:
		log.Printf("[WARN] Unknown workspace event type: %s", payload.Type)
		msg.Ack()
		return
	}

	if cs.wsHub != nil {
		cs.wsHub.SendProgress(websocket.ProgressEvent{
			WorkspaceID: payload.WorkspaceId,
			Stage:       payload.Type,
			Detail: map[string]interface{}{
				"text_status": payload.TextStatus,
				"node_count":  payload.NodeCount,
				"fallback":    payload.Fallback,
			},
		})
	}

	msg.Ack()
}

// handleTextRefreshed warms the extracted-text cache so the next deep dive or
// chat request skips the database read.
func (cs *consumerService) handleTextRefreshed(ctx context.Context, payload dto.WorkspaceEventMessage) {
	if cs.textCache == nil {
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: payload.WorkspaceId})
	if err != nil {
		log.Printf("[ERROR] Failed to load workspace %s for cache warm: %v", payload.WorkspaceId, err)
		return
	}
	if workspace == nil {
		log.Printf("[WARN] Workspace not found for cache warm: %s", payload.WorkspaceId)
		return
	}
	if workspace.PdfContent != "" {
		cs.textCache.Save(payload.WorkspaceId.String(), workspace.PdfContent)
	}
}
