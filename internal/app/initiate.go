package app

import (
	"context"
	"net/http"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/nsqio/go-nsq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/shandysiswandi/gopost/internal/pkg/clock"
	"github.com/shandysiswandi/gopost/internal/pkg/config"
	"github.com/shandysiswandi/gopost/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopost/internal/pkg/hash"
	"github.com/shandysiswandi/gopost/internal/pkg/idempotency"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/messaging"
	"github.com/shandysiswandi/gopost/internal/pkg/pgxdb"
	"github.com/shandysiswandi/gopost/internal/pkg/readiness"
	"github.com/shandysiswandi/gopost/internal/pkg/router"
	"github.com/shandysiswandi/gopost/internal/pkg/session"
	"github.com/shandysiswandi/gopost/internal/pkg/uid"
	"github.com/shandysiswandi/gopost/internal/pkg/validator"
)

func loadConfig() (config.Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	return config.NewViper(path)
}

func (a *App) initInstrument() error {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		return err
	}

	a.ins = ins
	a.closers = append(a.closers, closer("Instrument", a.ins.Shutdown))
	return nil
}

func (a *App) initLibraries() error {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))
	a.hmac = hash.NewHMACSHA256(a.config.GetString("session.secret"), a.config.GetArray("session.retired_secrets")...)
	a.pbkdf2 = hash.NewPBKDF2(
		a.config.GetInt("hash.pbkdf2.iterations"),
		a.config.GetInt("hash.pbkdf2.key_length"),
		a.config.GetInt("hash.pbkdf2.salt_length"),
	)

	v, err := validator.NewV10()
	if err != nil {
		return err
	}
	a.validator = v

	return nil
}

func (a *App) initDatabase() error {
	pool, err := pgxdb.NewPool(a.ctx, pgxdb.PoolConfig{
		URL:               a.config.GetString("database.url"),
		MaxConns:          int32(a.config.GetInt("database.pool.max_conns")), //nolint:gosec // small config value
		MinConns:          int32(a.config.GetInt("database.pool.min_conns")), //nolint:gosec // small config value
		MaxConnLifetime:   a.config.GetSecond("database.pool.max_conn_lifetime_seconds"),
		MaxConnIdleTime:   a.config.GetSecond("database.pool.max_conn_idle_seconds"),
		HealthCheckPeriod: a.config.GetSecond("database.pool.health_check_period_seconds"),
		ConnectTimeout:    a.config.GetSecond("database.connect_timeout_seconds"),
	})
	if err != nil {
		return err
	}
	a.dbConn = pool
	a.closers = append(a.closers, closer("Database", func(context.Context) error {
		pool.Close()
		return nil
	}))

	if a.config.GetBool("database.migrate") {
		if err := pgxdb.Migrate(a.ctx, pool); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) initCache() error {
	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		return err
	}

	rdb := redis.NewClient(opt)
	a.cacheConn = rdb
	a.closers = append(a.closers, closer("Redis", func(context.Context) error {
		return rdb.Close()
	}))

	if err := readiness.Wait(a.ctx, a.config.GetSecond("redis.connect_timeout_seconds"), "redis",
		func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	); err != nil {
		return err
	}

	a.idemp = idempotency.New(rdb)
	a.sessions = session.NewManager(
		session.NewRedisStore(rdb, a.uuid, a.config.GetMinute("session.ttl_minutes")),
		a.hmac,
		session.CookieOptions{
			Name:     a.config.GetString("session.cookie_name"),
			MaxAge:   a.config.GetMinute("session.ttl_minutes"),
			Secure:   a.config.GetBool("session.secure"),
			HTTPOnly: a.config.GetBool("session.http_only"),
		},
	)

	return nil
}

func (a *App) initMessaging() error {
	driver := a.config.GetString("messaging.driver")
	client, err := messaging.NewFromDriver(a.ctx, driver, messaging.FactoryOptions{
		NSQ: messaging.NSQConfig{
			ProducerAddr: a.config.GetString("messaging.nsq.producer_addr"),
			Config: func() *nsq.Config {
				cfg := nsq.NewConfig()
				if v := a.config.GetSecond("messaging.nsq.dial_timeout_seconds"); v > 0 {
					cfg.DialTimeout = v
				}
				if v := a.config.GetSecond("messaging.nsq.write_timeout_seconds"); v > 0 {
					cfg.WriteTimeout = v
				}
				return cfg
			}(),
		},
		NATS: messaging.NATSConfig{
			URL: a.config.GetString("messaging.nats.url"),
			Options: []nats.Option{
				nats.Name(a.config.GetString("messaging.nats.name")),
				nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
				nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
				nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
			},
		},
		Kafka: messaging.KafkaConfig{
			Brokers:      a.config.GetArray("messaging.kafka.brokers"),
			BatchTimeout: a.config.GetSecond("messaging.kafka.batch_timeout_seconds"),
		},
		PubSub: messaging.PubSubConfig{
			ProjectID:       a.config.GetString("messaging.pubsub.project_id"),
			CredentialsFile: a.config.GetString("messaging.pubsub.credentials_file"),
			Endpoint:        a.config.GetString("messaging.pubsub.endpoint"),
		},
	})
	if err != nil {
		return err
	}

	a.messaging = client
	a.closers = append(a.closers, closer("Messaging", func(context.Context) error {
		return client.Close()
	}))
	return nil
}

func (a *App) initHTTPServer() error {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
		Sessions:   a.sessions,
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}

	return nil
}

func closer(name string, fn func(context.Context) error) resourceCloser {
	return resourceCloser{name: name, fn: fn}
}
