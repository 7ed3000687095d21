package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chalet/internal/app/commands"
	"chalet/internal/app/middleware"
	"chalet/internal/app/outbox"
	"chalet/internal/app/queries"
	"chalet/internal/app/registry"
	"chalet/internal/domain/availability"
	"chalet/internal/domain/property"
	domainselection "chalet/internal/domain/selection"
	"chalet/internal/infra/broker/kafka"
	"chalet/internal/infra/config"
	mongostore "chalet/internal/infra/db/mongo"
	ginserver "chalet/internal/infra/http/gin"
	infraoutbox "chalet/internal/infra/outbox"
	"chalet/internal/infra/obs"
	infraproperty "chalet/internal/infra/property"
	"chalet/internal/infra/storage/memory"
	redisstore "chalet/internal/infra/storage/redis"
	"chalet/internal/infra/storage/s3"
	"chalet/internal/infra/validation"
)

type application struct {
	property property.Property
	commands commands.Bus
	queries  queries.Bus
	handlers ginserver.Handlers
	relay    outbox.Relay
	producer infraoutbox.Producer
	checks   []obs.Check
	closers  []func(ctx context.Context) error
}

func (a *application) close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	return errors.Join(errs...)
}

// buildApplication loads the property and wires the buses. When serving is
// false only in-process stores are used, which is all the CLI queries need.
func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger, serving bool) (*application, error) {
	app := &application{}
	ok := false
	defer func() {
		if !ok {
			_ = app.close(context.Background())
		}
	}()

	prop, err := loadProperty(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var mongoClient *mongostore.Client
	if cfg.MongoURI != "" && (serving || cfg.BookedSource == config.SourceMongo) {
		mongoClient, err = mongostore.New(ctx, mongostore.Config{URI: cfg.MongoURI, Database: cfg.MongoDB})
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		app.closers = append(app.closers, mongoClient.Close)
		app.checks = append(app.checks, obs.Check{Name: "mongo", Probe: mongoClient.Ping})
	}

	var booked availability.BookedSource = availability.StaticBooked(prop.Booked)
	if cfg.BookedSource == config.SourceMongo {
		booked = mongostore.NewReservationSource(mongoClient.DB)
	}
	days, err := booked.BookedDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("load booked days: %w", err)
	}
	prop = prop.WithBooked(days)
	app.property = prop
	logger.Info("property loaded",
		"name", prop.Name,
		"currency", prop.Pricing.Currency,
		"blocked", prop.Blocked.Len(),
		"booked", prop.Booked.Len(),
		"booked_source", cfg.BookedSource)

	var (
		sessions domainselection.Repository = memory.NewSessionRepository()
		idStore  middleware.IdempotencyStore = memory.NewIdempotencyStore(cfg.IdempotencyTTL)
		box      outbox.Outbox
	)
	memBox := memory.NewOutbox()
	box, app.relay = memBox, memBox

	if serving {
		if cfg.SessionStore == config.StoreRedis {
			client, err := redisstore.NewClient(ctx, redisstore.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
			if err != nil {
				return nil, err
			}
			app.closers = append(app.closers, func(context.Context) error { return client.Close() })
			app.checks = append(app.checks, obs.Check{Name: "redis", Probe: func(ctx context.Context) error { return client.Ping(ctx).Err() }})
			sessions = redisstore.NewSessionRepository(client, cfg.SessionTTL)
		}
		if mongoClient != nil {
			mongoIDs, err := mongostore.NewIdempotencyStore(ctx, mongoClient.DB, cfg.IdempotencyTTL)
			if err != nil {
				return nil, fmt.Errorf("idempotency store: %w", err)
			}
			mongoBox, err := infraoutbox.NewStore(ctx, mongoClient.DB, cfg.OutboxClaimLease)
			if err != nil {
				return nil, fmt.Errorf("outbox store: %w", err)
			}
			idStore = mongoIDs
			box, app.relay = mongoBox, mongoBox
		}
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, "chalet")
			if err != nil {
				return nil, fmt.Errorf("kafka producer: %w", err)
			}
			app.closers = append(app.closers, func(context.Context) error { return producer.Close() })
			app.producer = producer
		} else {
			app.producer = infraoutbox.LogProducer{Logger: logger}
		}
	}

	deps := registry.Deps{
		Property: prop,
		Rules:    prop.Rules(cfg.HorizonDays, cfg.PropertyTZ, time.Now),
		Sessions: sessions,
		Outbox:   box,
		Encoder:  outbox.JSONEventEncoder{},
		Now:      time.Now,
	}
	commandBus := commands.NewInMemoryBus()
	registry.RegisterCommands(commandBus, deps)
	queryBus := queries.NewInMemoryBus()
	registry.RegisterQueries(queryBus, deps)

	validator := validation.New()
	app.commands = middleware.ChainCommands(
		commandBus,
		middleware.Logging(logger),
		middleware.Validation(validator),
		middleware.Serialize(),
		middleware.Idempotency(middleware.IdempotencyOptions{Store: idStore, TTL: cfg.IdempotencyTTL}),
		middleware.OutboxFlush(box),
	)
	app.queries = middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger),
		middleware.QueryValidation(validator),
	)

	app.handlers = ginserver.Handlers{
		Calendar:     ginserver.CalendarHandler{Queries: app.queries},
		Pricing:      ginserver.PricingHandler{Queries: app.queries},
		Availability: ginserver.AvailabilityHandler{Queries: app.queries},
		Selection:    ginserver.SelectionHandler{Commands: app.commands, Queries: app.queries},
	}
	ok = true
	return app, nil
}

func loadProperty(ctx context.Context, cfg config.Config, logger *slog.Logger) (property.Property, error) {
	var src infraproperty.Source
	switch cfg.PropertySource {
	case config.SourceS3:
		reader, err := s3.NewObjectReader(s3.Options{
			Endpoint:  cfg.S3Endpoint,
			UseSSL:    cfg.S3UseSSL,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.PropertyBucket,
			Key:       cfg.PropertyKey,
		}, logger)
		if err != nil {
			return property.Property{}, err
		}
		src = reader
	default:
		path := cfg.PropertyFile
		if path == "" {
			path = infraproperty.DefaultFilePath()
		}
		src = infraproperty.FileSource{Path: path}
	}
	logger.Debug("loading property", "source", src.Describe())
	return infraproperty.Load(ctx, src, cfg.Currency)
}
