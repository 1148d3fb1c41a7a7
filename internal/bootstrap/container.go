package bootstrap

import (
	"context"
	"fmt"

	"kiosk-assistant-be/internal/config"
	"kiosk-assistant-be/internal/controller"
	"kiosk-assistant-be/internal/metrics"
	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/internal/pkg/serverutils"
	"kiosk-assistant-be/internal/repository/contract"
	"kiosk-assistant-be/internal/repository/implementation"
	"kiosk-assistant-be/internal/repository/memory"
	redisRepo "kiosk-assistant-be/internal/repository/redis"
	"kiosk-assistant-be/internal/service"
	"kiosk-assistant-be/pkg/database"
	"kiosk-assistant-be/pkg/embedding"
	"kiosk-assistant-be/pkg/events"
	"kiosk-assistant-be/pkg/llm/factory"
	"kiosk-assistant-be/pkg/rag/index"
	"kiosk-assistant-be/pkg/rag/search"
	"kiosk-assistant-be/pkg/rag/session"

	pktNats "kiosk-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatbotController  controller.IChatbotController
	LocationController controller.ILocationController
	HealthController   controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	KnowledgeService service.IKnowledgeService

	Index       index.DocumentIndex
	Metrics     *metrics.Metrics
	RateLimiter *serverutils.RateLimiter
	Logger      logger.ILogger

	cfg        *config.Config
	chunkStore *implementation.KnowledgeChunkRepositoryImpl
	closers    []func()
}

func NewContainer(cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{
		cfg:         cfg,
		Metrics:     metrics.New(),
		RateLimiter: serverutils.NewRateLimiter(cfg.App.RateLimitRPM, cfg.App.RateLimitBurst),
		Logger:      sysLogger,
	}

	// 1. Session storage
	sessionRepo, err := c.newSessionRepository()
	if err != nil {
		c.Close()
		return nil, err
	}
	sessionManager := session.NewManager(sessionRepo)

	// 2. Knowledge index and embeddings
	if err := c.newDocumentIndex(); err != nil {
		c.Close()
		return nil, err
	}

	embeddingProvider, err := c.newEmbeddingProvider()
	if err != nil {
		c.Close()
		return nil, err
	}
	retriever := search.NewRetriever(embeddingProvider, c.Index, search.WithLatencyObserver(c.Metrics.ObserveRetrieval))

	// 3. Completion gateway
	llmBaseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  llmBaseURL,
		APIKey:   cfg.Ai.OpenAIAPIKey,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	sysLogger.Info("BOOTSTRAP", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 4. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS, turn events stay in process", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	publisherService := service.NewPublisherService(events.TypeConversationTurn, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, events.TypeConversationTurn, forwarder, sysLogger)

	// 5. Services
	pricingService := service.NewPricingService(cfg.Gateways.PricingBaseURL, cfg.Gateways.PricingAPIKey, cfg.Gateways.Timeout)
	locationService := service.NewLocationService(
		cfg.Gateways.LocationBaseURL,
		cfg.Gateways.LocationAPIKey,
		cfg.Gateways.Timeout,
		cfg.Gateways.LocationCache,
		sysLogger,
	)
	c.KnowledgeService = service.NewKnowledgeService(
		service.NewPageFetcher(cfg.Gateways.Timeout),
		embeddingProvider,
		c.Index,
		cfg.Knowledge.ChunkSize,
		cfg.Knowledge.Concurrency,
		sysLogger,
	)
	chatbotService := service.NewChatbotService(
		sessionManager,
		pricingService,
		locationService,
		retriever,
		llmProvider,
		publisherService,
		c.Metrics,
		sysLogger,
		cfg.Gateways.Timeout,
	)

	// 6. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService, sysLogger)
	c.LocationController = controller.NewLocationController(locationService)
	c.HealthController = controller.NewHealthController(c.Index)

	return c, nil
}

func (c *Container) newSessionRepository() (contract.SessionRepository, error) {
	if c.cfg.Session.Backend != "redis" {
		return memory.NewSessionRepository(c.cfg.Session.TTL), nil
	}

	opt, err := redis.ParseURL(c.cfg.App.RedisURL)
	if err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as address", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: c.cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	c.closers = append(c.closers, func() { _ = rdb.Close() })

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return redisRepo.NewSessionRepository(rdb, c.cfg.Session.TTL), nil
}

func (c *Container) newDocumentIndex() error {
	if c.cfg.Database.Connection == "" {
		c.Index = index.NewMemoryIndex()
		return nil
	}

	db, err := database.NewGormDBFromDSN(c.cfg.Database.Connection, !c.cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		c.closers = append(c.closers, func() { _ = sqlDB.Close() })
	}

	chunks := implementation.NewKnowledgeChunkRepository(db)
	if err := chunks.Migrate(context.Background()); err != nil {
		return fmt.Errorf("migrate knowledge chunks: %w", err)
	}
	c.chunkStore = chunks
	c.Index = chunks
	return nil
}

// newEmbeddingProvider chains the configured gateway, the hash fallback and an LRU cache.
func (c *Container) newEmbeddingProvider() (embedding.EmbeddingProvider, error) {
	ai := c.cfg.Ai

	var primary embedding.EmbeddingProvider
	switch ai.EmbeddingProvider {
	case "openai":
		primary = embedding.NewOpenAIProvider(ai.OpenAIAPIKey, ai.OpenAIBaseURL, ai.EmbeddingModel)
	case "ollama":
		primary = embedding.NewOllamaProvider(ai.OllamaBaseURL, ai.EmbeddingModel)
	}
	c.Logger.Info("BOOTSTRAP", "Using embedding provider", map[string]interface{}{
		"provider":  ai.EmbeddingProvider,
		"dimension": ai.EmbeddingDimension,
	})

	fallback := embedding.NewFallbackProvider(primary, ai.EmbeddingDimension, c.Logger, c.Metrics.ObserveEmbeddingFallback)
	if ai.EmbeddingCacheSize <= 0 {
		return fallback, nil
	}
	cached, err := embedding.NewCachedProvider(fallback, ai.EmbeddingCacheSize)
	if err != nil {
		return nil, fmt.Errorf("init embedding cache: %w", err)
	}
	return cached, nil
}

// LoadKnowledge (re)builds the document index from the configured sources.
func (c *Container) LoadKnowledge(ctx context.Context) (*service.IngestReport, error) {
	if c.chunkStore != nil {
		if err := c.chunkStore.Reset(ctx); err != nil {
			return nil, fmt.Errorf("reset knowledge chunks: %w", err)
		}
	}

	report, err := c.KnowledgeService.Initialize(ctx, c.cfg.Knowledge.Sources)
	if n, cerr := c.Index.Count(ctx); cerr == nil {
		c.Metrics.KnowledgeChunks.Set(float64(n))
	}
	return report, err
}

// Close releases connections in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
