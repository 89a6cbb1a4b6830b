package bootstrap

import (
	"context"
	"time"

	"note-to-self/internal/config"
	"note-to-self/internal/controller"
	"note-to-self/internal/handler"
	"note-to-self/internal/pkg/logger"
	"note-to-self/internal/repository/memory"
	"note-to-self/internal/repository/unitofwork"
	"note-to-self/internal/service"
	"note-to-self/internal/websocket"

	pktNats "note-to-self/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NotebookController    controller.INotebookController
	NotebookStreamHandler *handler.NotebookStreamHandler

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	rdb     *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// In-process event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	// Optional NATS mirror
	var natsPub *pktNats.Publisher
	var mirror service.EventMirror
	if cfg.Events.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS unavailable, events stay in-process", map[string]interface{}{"error": err.Error()})
		} else {
			natsPub = pub
			mirror = pub
		}
	}

	// Optional Redis fanout for the websocket hub
	rdb := newRedisClient(cfg.Events.RedisURL, sysLogger)
	wsHub := websocket.NewHub(rdb, sysLogger)

	publisherService := service.NewPublisherService(cfg.Events.ChangeTopic, pubSub, mirror, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.ChangeTopic, wsHub, sysLogger)

	sessionService := service.NewSessionService(
		memory.NewSessionRepository(cfg.Session.TTL),
		cfg.Session.JwtSecret,
		cfg.Session.TTL,
		sysLogger,
	)
	notebookService := service.NewNotebookService(uowFactory, publisherService, cfg.Database.QueryTimeout, sysLogger)

	return &Container{
		NotebookController:    controller.NewNotebookController(notebookService, sessionService, cfg.IsProduction()),
		NotebookStreamHandler: handler.NewNotebookStreamHandler(wsHub, sessionService, sysLogger),
		ConsumerService:       consumerService,
		WebSocketHub:          wsHub,
		Logger:                sysLogger,
		pubSub:                pubSub,
		natsPub:               natsPub,
		rdb:                   rdb,
	}
}

func newRedisClient(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "failed to parse Redis URL, using it as an address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Redis unavailable, websocket fanout stays local", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// Close releases the event bus and external connections.
func (c *Container) Close() {
	if err := c.pubSub.Close(); err != nil {
		c.Logger.Warn("Bootstrap", "failed to close event bus", map[string]interface{}{"error": err.Error()})
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}
