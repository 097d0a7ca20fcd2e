package bootstrap

import (
	"context"
	"log"

	"classboard-be/internal/config"
	"classboard-be/internal/controller"
	"classboard-be/internal/handler"
	"classboard-be/internal/pkg/logger"
	"classboard-be/internal/pkg/mailer"
	"classboard-be/internal/repository/implementation"
	"classboard-be/internal/repository/memory"
	"classboard-be/internal/repository/unitofwork"
	"classboard-be/internal/service"
	"classboard-be/internal/websocket"
	"classboard-be/pkg/storage"

	pktNats "classboard-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	UserController     controller.IUserController
	CategoryController controller.ICategoryController
	ClassController    controller.IClassController
	FolderController   controller.IFolderController
	LessonController   controller.ILessonController
	MediaController    controller.IMediaController
	EditorController   controller.IEditorController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	localStore, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.App.BaseURL, cfg.Storage.MaxUpload)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize upload storage: %v", err)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// In-memory edit sessions
	sessionRepo := memory.NewSessionRepository()

	// 2.5 Infrastructure
	// NATS
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Editor.SaveTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Editor.SaveTopic,
		uowFactory,
		localStore,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory, localStore, natsPub)

	categoryService := service.NewCategoryService(uowFactory)
	classService := service.NewClassService(uowFactory)
	folderService := service.NewFolderService(uowFactory)
	mediaService := service.NewMediaService(uowFactory, localStore)
	lessonService := service.NewLessonService(uowFactory, mediaService, natsPub)

	editorLogger := logger.NewIsolatedLogger("logs/editor.log")
	editorService := service.NewEditorService(
		uowFactory,
		sessionRepo,
		localStore,
		publisherService,
		natsPub,
		wsHub,
		editorLogger,
		cfg.Editor.AutosaveDebounce,
	)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:     controller.NewAuthController(authService),
		OAuthController:    controller.NewOAuthController(oauthService),
		UserController:     controller.NewUserController(userService),
		CategoryController: controller.NewCategoryController(categoryService),
		ClassController:    controller.NewClassController(classService),
		FolderController:   controller.NewFolderController(folderService),
		LessonController:   controller.NewLessonController(lessonService),
		MediaController:    controller.NewMediaController(mediaService),
		EditorController:   controller.NewEditorController(editorService),

		ConsumerService: consumerService,
	}
}
