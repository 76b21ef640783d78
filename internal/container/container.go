package container

import (
	"context"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/nmoreau/shortlink/internal/analytics"
	analyticsstore "github.com/nmoreau/shortlink/internal/analytics/store"
	"github.com/nmoreau/shortlink/internal/handlers"
	"github.com/nmoreau/shortlink/internal/health"
	"github.com/nmoreau/shortlink/internal/messaging"
	"github.com/nmoreau/shortlink/internal/middleware"
	"github.com/nmoreau/shortlink/internal/ratelimit"
	"github.com/nmoreau/shortlink/internal/shortener"
	"github.com/nmoreau/shortlink/internal/store"
)

// Names for the two independent redis substrates.
const (
	RedisLinks = "links"
	RedisCache = "cache"
)

// Options is the environment-sourced configuration surface.
type Options struct {
	Port            int    `default:"8080"                               help:"Port to listen on"                                              short:"p"`
	BaseURL         string `default:""                                   help:"Base URL for composing short links; falls back to serving host"`
	StoreBackend    string `default:"redis"                              help:"Durable link store backend: redis, postgres or memory"`
	RedisAddr       string `default:"localhost:6379"                     help:"Redis address for the durable link store"`
	PostgresDSN     string `default:"postgres://localhost:5432/shortlink" help:"Postgres DSN when the postgres backend is selected"`
	CacheRedisAddr  string `default:"localhost:6379"                     help:"Redis address for the ephemeral cache substrate"`
	CacheRedisDB    int    `default:"1"                                  help:"Redis database index for the ephemeral cache"`
	CodeLength      int    `default:"7"                                  help:"Length of generated short codes"                                short:"c"`
	RateLimitWindow int    `default:"60"                                 help:"Rate limit window length in seconds (floor 10)"`
	RateLimitMax    int    `default:"10"                                 help:"Max requests per window (floor 1)"`
	DedupTTL        int    `default:"0"                                  help:"Dedup entry TTL in seconds; 0 or less disables deduplication"`
	CORSMode        string `default:"open"                               help:"CORS mode: open, list or off"`
	CORSOrigins     string `default:""                                   help:"Comma-separated origin allow-list for list mode"`
	LogFormat       string `default:"console"                            help:"Log format: console or json"`
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the two named redis clients: the durable link
// store substrate and the independent ephemeral cache substrate.
func RedisPackage(injector *do.Injector) {
	do.ProvideNamed(injector, RedisLinks, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: options.RedisAddr}), nil
	})

	do.ProvideNamed(injector, RedisCache, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.CacheRedisAddr,
			DB:   options.CacheRedisDB,
		}), nil
	})
}

// PostgresPackage provides the pgx pool. Only invoked when the postgres
// backend is selected.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})
}

// storeBundle groups the selected durable backend with its checker.
type storeBundle struct {
	links    shortener.LinkStore
	dedup    shortener.DedupStore
	counters ratelimit.CounterStore
	registry *health.Registry
}

// StorePackage selects the durable backend and the counter store.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*storeBundle, error) {
		options := do.MustInvoke[*Options](i)

		if options.StoreBackend == "memory" {
			mem := store.NewMemoryStore()

			return &storeBundle{
				links:    mem,
				dedup:    mem,
				counters: store.NewCounterMemoryStore(),
				registry: health.NewRegistry(map[string]health.Checker{
					"memory": health.NoopChecker{},
				}),
			}, nil
		}

		cache := do.MustInvokeNamed[*redis.Client](i, RedisCache)
		counters := store.NewCounterRedisStore(cache)
		checkers := map[string]health.Checker{
			"cache": health.NewRedisChecker(cache),
		}

		if options.StoreBackend == "postgres" {
			pool := do.MustInvoke[*pgxpool.Pool](i)
			pg := store.NewPostgresStore(pool)
			checkers["postgres"] = health.NewPostgresChecker(pool)

			return &storeBundle{
				links:    pg,
				dedup:    pg,
				counters: counters,
				registry: health.NewRegistry(checkers),
			}, nil
		}

		links := do.MustInvokeNamed[*redis.Client](i, RedisLinks)
		rs := store.NewRedisStore(links)
		checkers["links"] = health.NewRedisChecker(links)

		return &storeBundle{
			links:    rs,
			dedup:    rs,
			counters: counters,
			registry: health.NewRegistry(checkers),
		}, nil
	})
}

// ShortenerPackage provides the allocation and resolution engine.
func ShortenerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Allocator, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		bundle := do.MustInvoke[*storeBundle](i)

		generate, err := shortener.NewGenerator(options.CodeLength)
		if err != nil {
			return nil, err
		}

		dedup := shortener.NewIndex(
			bundle.dedup,
			time.Duration(options.DedupTTL)*time.Second,
			logger,
		)

		return shortener.NewAllocator(bundle.links, dedup, generate, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Resolver, error) {
		bundle := do.MustInvoke[*storeBundle](i)

		return shortener.NewResolver(bundle.links), nil
	})
}

// RateLimitPackage provides the fixed-window limiter over the ephemeral
// cache substrate.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.FixedWindowLimiter, error) {
		options := do.MustInvoke[*Options](i)
		bundle := do.MustInvoke[*storeBundle](i)

		return ratelimit.NewFixedWindowLimiter(
			bundle.counters,
			time.Duration(options.RateLimitWindow)*time.Second,
			int64(options.RateLimitMax),
		), nil
	})
}

// PublisherGroupPackage provides the redis-stream event publisher.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		cache := do.MustInvokeNamed[*redis.Client](i, RedisCache)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: cache},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group for the
// consumer binary.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (message.Subscriber, error) {
		cache := do.MustInvokeNamed[*redis.Client](i, RedisCache)

		return redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        cache,
				ConsumerGroup: "analytics",
			},
			watermill.NewStdLogger(false, false),
		)
	})

	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		cache := do.MustInvokeNamed[*redis.Client](i, RedisCache)

		return analyticsstore.NewRedis(cache), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		subscriber := do.MustInvoke[message.Subscriber](i)
		events := do.MustInvoke[analytics.Store](i)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber, analytics.TopicLinkCreated, events.SaveLinkCreated, logger,
		))
		group.Add(messaging.NewConsumer(
			subscriber, analytics.TopicLinkResolved, events.SaveLinkResolved, logger,
		))

		return group, nil
	})
}

// HTTPPackage provides the chi mux with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		bundle := do.MustInvoke[*storeBundle](i)
		allocator := do.MustInvoke[*shortener.Allocator](i)
		resolver := do.MustInvoke[*shortener.Resolver](i)
		limiter := do.MustInvoke[*ratelimit.FixedWindowLimiter](i)
		publishers := do.MustInvoke[*messaging.PublisherGroup](i)

		handler := handlers.NewLinkHandler(
			allocator,
			resolver,
			limiter,
			options.BaseURL,
			messaging.NewPublishFunc[analytics.LinkCreatedEvent](
				publishers.Publisher(), analytics.TopicLinkCreated,
			),
			messaging.NewPublishFunc[analytics.LinkResolvedEvent](
				publishers.Publisher(), analytics.TopicLinkResolved,
			),
			logger,
		)

		cors := middleware.NewCORSPolicy(
			middleware.CORSMode(options.CORSMode),
			strings.Split(options.CORSOrigins, ","),
		)

		mux := chi.NewMux()
		handlers.RegisterRoutes(mux, handler, bundle.registry, cors)

		return mux, nil
	})
}
