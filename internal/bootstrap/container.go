package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vinixspb/vnxChooseApple-bot/internal/config"
	"github.com/vinixspb/vnxChooseApple-bot/internal/constant"
	"github.com/vinixspb/vnxChooseApple-bot/internal/controller"
	"github.com/vinixspb/vnxChooseApple-bot/internal/entity"
	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/logger"
	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/mailer"
	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/serverutils"
	"github.com/vinixspb/vnxChooseApple-bot/internal/repository/contract"
	"github.com/vinixspb/vnxChooseApple-bot/internal/repository/implementation"
	"github.com/vinixspb/vnxChooseApple-bot/internal/repository/memory"
	"github.com/vinixspb/vnxChooseApple-bot/internal/service"
	"github.com/vinixspb/vnxChooseApple-bot/internal/websocket"
	pktNats "github.com/vinixspb/vnxChooseApple-bot/pkg/nats"
	"github.com/vinixspb/vnxChooseApple-bot/pkg/sheets"
)

type Container struct {
	// Controllers
	SelectionController controller.ISelectionController
	CatalogController   controller.ICatalogController
	LeadController      controller.ILeadController
	AdminMiddleware     fiber.Handler

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Operator feed
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

// NewContainer wires the whole service. db may be nil; leads then live in
// the in-memory repository only.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	sheetsClient := sheets.NewClient(cfg.Sheets.SpreadsheetID, cfg.Sheets.APIKey)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
	}

	var leadRepo contract.LeadRepository
	if db != nil {
		if err := db.AutoMigrate(&entity.Lead{}); err != nil {
			log.Printf("[WARN] Lead table migration failed: %v", err)
		}
		leadRepo = implementation.NewLeadRepository(db)
	} else {
		log.Println("[WARN] No database configured, keeping leads in memory")
		leadRepo = memory.NewLeadRepository()
	}

	// Operator feed hub
	wsLogger := logger.NewIsolatedLogger("logs/leads.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	sessionRepo := memory.NewSessionRepository()
	catalogService := service.NewCatalogService(sheetsClient, cfg.Store.Sources, sysLogger)
	leadPublisher := service.NewPublisherService(constant.TopicLeadCreated, pubSub)

	selectionService := service.NewSelectionService(
		catalogService,
		sessionRepo,
		leadPublisher,
		cfg.Store.Schema,
		sysLogger,
	)

	leadService := service.NewLeadService(leadRepo)

	consumerService := service.NewConsumerService(
		pubSub,
		constant.TopicLeadCreated,
		leadRepo,
		emailService,
		cfg.Store.ManagerEmail,
		natsPub,
		wsHub,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		SelectionController: controller.NewSelectionController(selectionService),
		CatalogController:   controller.NewCatalogController(catalogService, cfg.Store.Schema),
		LeadController:      controller.NewLeadController(leadService),
		AdminMiddleware:     serverutils.AdminJwtMiddleware,
		ConsumerService:     consumerService,
		WebSocketHub:        wsHub,
		Logger:              sysLogger,
	}
}
