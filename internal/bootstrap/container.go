package bootstrap

import (
	"context"
	"log"

	"github.com/FishWY/lunwen-workspace/internal/config"
	"github.com/FishWY/lunwen-workspace/internal/controller"
	"github.com/FishWY/lunwen-workspace/internal/pkg/logger"
	"github.com/FishWY/lunwen-workspace/internal/repository/memory"
	"github.com/FishWY/lunwen-workspace/internal/repository/unitofwork"
	"github.com/FishWY/lunwen-workspace/internal/service"
	"github.com/FishWY/lunwen-workspace/internal/websocket"
	"github.com/FishWY/lunwen-workspace/pkg/events"
	"github.com/FishWY/lunwen-workspace/pkg/llm/factory"
	"github.com/FishWY/lunwen-workspace/pkg/mindmap"

	pktNats "github.com/FishWY/lunwen-workspace/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WorkspaceController controller.IWorkspaceController
	AiController        controller.IAiController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Stack
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	generator := mindmap.NewGenerator(llmProvider, cfg.Ai.DisplayLanguage)

	// Extracted-text cache
	textCache := memory.NewTextCacheRepository()

	// 3.5 Infrastructure
	// NATS (auxiliary mirror; the app runs fine without it)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub (generation progress)
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Instances that only consume the NATS mirror (no in-process bus) still
	// get progress pushed to their connected tabs.
	if natsSub != nil {
		err := natsSub.Subscribe("events.>", "workspace-progress", func(ctx context.Context, evt events.Event) error {
			payload := evt.Payload()
			raw, _ := payload["workspace_id"].(string)
			workspaceId, err := uuid.Parse(raw)
			if err != nil {
				return nil // Not a workspace event; ack and move on
			}
			wsHub.SendProgress(websocket.ProgressEvent{
				WorkspaceID: workspaceId,
				Stage:       evt.EventType(),
				Detail:      payload,
			})
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to NATS events: %v", err)
		}
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.WorkspaceTopic, pubSub, natsPub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.WorkspaceTopic,
		uowFactory,
		textCache,
		wsHub,
	)

	workspaceService := service.NewWorkspaceService(uowFactory, publisherService, cfg.Upload.Dir)
	aiService := service.NewAiService(
		uowFactory,
		generator,
		llmProvider,
		textCache,
		publisherService,
		sysLogger,
		cfg.Upload.Dir,
		service.AICaps{
			Mindmap:  cfg.Ai.MindmapTextCap,
			DeepDive: cfg.Ai.DeepDiveTextCap,
			Chat:     cfg.Ai.ChatTextCap,
		},
	)

	// 5. Controllers
	workspaceController := controller.NewWorkspaceController(workspaceService, cfg.Upload.Dir, cfg.Upload.MaxSizeBytes)
	aiController := controller.NewAiController(aiService)

	return &Container{
		WorkspaceController: workspaceController,
		AiController:        aiController,
		ConsumerService:     consumerService,
		WebSocketHub:        wsHub,
	}
}
