package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/teamtrack/internal/config"
	"github.com/riskibarqy/teamtrack/internal/domain/availability"
	"github.com/riskibarqy/teamtrack/internal/domain/chat"
	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/domain/lineup"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/playerstats"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/auth"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/pubsub"
	repocache "github.com/riskibarqy/teamtrack/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/storage"
	"github.com/riskibarqy/teamtrack/internal/interfaces/httpapi"
	"github.com/riskibarqy/teamtrack/internal/interfaces/wsgateway"
	basecache "github.com/riskibarqy/teamtrack/internal/platform/cache"
	idgen "github.com/riskibarqy/teamtrack/internal/platform/id"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/riskibarqy/teamtrack/internal/platform/resilience"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

// App holds the HTTP server and the background pieces that share its lifetime.
type App struct {
	Server *http.Server
	Hub    *wsgateway.Hub

	logger  *logging.Logger
	closers []func() error
}

type repositories struct {
	profiles      profile.Repository
	credentials   profile.CredentialRepository
	events        event.Repository
	availability  availability.Repository
	players       player.Repository
	stats         playerstats.Repository
	lineups       lineup.Repository
	picks         lineup.StartingPickRepository
	media         media.Repository
	messages      chat.MessageRepository
	announcements chat.AnnouncementRepository
	notifications notification.Repository
}

type feed struct {
	publisher  realtime.Publisher
	subscriber pubsub.Subscriber
}

// New wires repositories, infrastructure clients and services into a ready server.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	clock := clockwork.NewRealClock()
	a := &App{logger: logger}

	repos, err := a.buildRepositories(ctx, cfg, clock)
	if err != nil {
		a.Close()
		return nil, err
	}

	changes, err := a.buildFeed(cfg, clock)
	if err != nil {
		a.Close()
		return nil, err
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
	}, clock)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build token manager: %w", err)
	}

	objects, err := storage.NewLocalStorage(storage.LocalConfig{
		RootDir:       cfg.StorageDir,
		PublicBaseURL: cfg.PublicBaseURL,
	}, logger.Named("storage"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build storage: %w", err)
	}

	ids := idgen.NewUUIDGenerator()
	notificationSvc, err := usecase.NewNotificationService(repos.notifications, repos.profiles, ids, logger, clock, cfg.NotificationWorkers)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build notification service: %w", err)
	}
	a.closers = append(a.closers, func() error {
		notificationSvc.Close()
		return nil
	})

	services := httpapi.Services{
		Auth:          usecase.NewAuthService(repos.credentials, repos.profiles, hasher, tokens, ids, logger, clock),
		Profiles:      usecase.NewProfileService(repos.profiles, repos.players, objects, logger, clock),
		Events:        usecase.NewEventService(repos.events, repos.availability, repos.lineups, repos.picks, repos.profiles, notificationSvc, ids, logger, clock),
		Availability:  usecase.NewAvailabilityService(repos.events, repos.availability, repos.players, repos.profiles, clock),
		Squad:         usecase.NewSquadService(repos.players, repos.stats, repos.profiles, ids, logger, clock),
		Stats:         usecase.NewStatsService(repos.stats, repos.players, repos.profiles, logger, clock),
		Lineups:       usecase.NewLineupService(repos.events, repos.players, repos.availability, repos.lineups, repos.picks, repos.profiles, notificationSvc, ids, logger, clock),
		Chat:          usecase.NewChatService(repos.messages, repos.announcements, repos.profiles, changes.publisher, notificationSvc, ids, logger, clock),
		Media:         usecase.NewMediaService(repos.media, objects, repos.profiles, ids, logger, clock),
		Notifications: notificationSvc,
		Home:          usecase.NewHomeService(repos.profiles, repos.events, repos.players, repos.notifications, logger, clock),
	}

	hubCfg := wsgateway.DefaultConfig()
	hubCfg.PingInterval = cfg.WSPingInterval
	hubCfg.PongTimeout = cfg.WSPongWait
	hubCfg.SendBuffer = cfg.WSSendBuffer
	hubCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	a.Hub = wsgateway.NewHub(changes.subscriber, hubCfg, logger.Named("realtime.hub"))

	handler := httpapi.NewHandler(services, a.Hub, cfg.MaxUploadBytes, logger)
	router := httpapi.NewRouter(handler, tokens, logger, cfg.CORSAllowedOrigins)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// Close releases resources in reverse construction order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close app resource failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, clock clockwork.Clock) (repositories, error) {
	if cfg.MemoryMode() {
		a.logger.Info("repositories running in memory", "reason", "DB_URL empty")
		return memoryRepositories(clock), nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)

	if err := db.PingContext(ctx); err != nil {
		return repositories{}, fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.BootstrapSeed(ctx, db, clock.Now().UTC()); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	repos := repositories{
		profiles:      postgres.NewProfileRepository(db),
		credentials:   postgres.NewCredentialRepository(db),
		events:        postgres.NewEventRepository(db),
		availability:  postgres.NewAvailabilityRepository(db),
		players:       postgres.NewPlayerRepository(db),
		stats:         postgres.NewPlayerStatsRepository(db),
		lineups:       postgres.NewLineupRepository(db),
		picks:         postgres.NewStartingPickRepository(db),
		media:         postgres.NewMediaRepository(db),
		messages:      postgres.NewMessageRepository(db),
		announcements: postgres.NewAnnouncementRepository(db),
		notifications: postgres.NewNotificationRepository(db),
	}

	if cfg.CacheEnabled {
		store := basecache.NewStoreWithClock(cfg.CacheTTL, clock)
		repos.profiles = repocache.NewProfileRepository(repos.profiles, store)
		repos.players = repocache.NewPlayerRepository(repos.players, store)
		repos.events = repocache.NewEventRepository(repos.events, store)
		a.logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	a.logger.Info("repositories running on postgres", "db_name", dbNameFromURL(cfg.DBURL))
	return repos, nil
}

func memoryRepositories(clock clockwork.Clock) repositories {
	now := clock.Now().UTC()
	players := memory.SeedPlayers(now)

	return repositories{
		profiles:      memory.NewProfileRepository(nil),
		credentials:   memory.NewCredentialRepository(),
		events:        memory.NewEventRepository(memory.SeedEvents(now)),
		availability:  memory.NewAvailabilityRepository(),
		players:       memory.NewPlayerRepository(players),
		stats:         memory.NewPlayerStatsRepository(memory.SeedPlayerStats(players, now)),
		lineups:       memory.NewLineupRepository(),
		picks:         memory.NewStartingPickRepository(),
		media:         memory.NewMediaRepository(),
		messages:      memory.NewMessageRepository(),
		announcements: memory.NewAnnouncementRepository(),
		notifications: memory.NewNotificationRepository(),
	}
}

func (a *App) buildFeed(cfg config.Config, clock clockwork.Clock) (feed, error) {
	if !cfg.NATSEnabled {
		broker := pubsub.NewBroker()
		return feed{publisher: broker, subscriber: broker}, nil
	}

	natsCfg := pubsub.NATSConfig{
		URL:           cfg.NATSURL,
		SubjectPrefix: cfg.NATSSubjectPrefix,
		ClientName:    cfg.ServiceName,
		MaxReconnects: cfg.NATSMaxReconnects,
		ReconnectWait: cfg.NATSReconnectWait,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NATSCircuitEnabled,
			FailureThreshold: cfg.NATSCircuitFailureCount,
			OpenTimeout:      cfg.NATSCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NATSCircuitHalfOpenMaxReq,
		},
	}
	natsLogger := a.logger.Named("pubsub.nats")
	nc, err := pubsub.Connect(natsCfg, natsLogger)
	if err != nil {
		return feed{}, fmt.Errorf("connect realtime feed: %w", err)
	}
	a.closers = append(a.closers, func() error {
		return nc.Drain()
	})

	return feed{
		publisher:  pubsub.NewNATSPublisher(nc, natsCfg, natsLogger, clock),
		subscriber: pubsub.NewNATSSubscriber(nc, natsCfg, natsLogger),
	}, nil
}
