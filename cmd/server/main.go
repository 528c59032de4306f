// Command server wires the readiness, entitlement, and policy services
// behind one HTTP API. Backends are optional: with no postgres, redis, or
// kafka configured everything runs on in-memory stores, which is the
// development and test posture.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	entitlementhandler "mintgate/internal/entitlement/handler"
	entitlementmetrics "mintgate/internal/entitlement/metrics"
	entitlementservice "mintgate/internal/entitlement/service"
	usagestore "mintgate/internal/entitlement/store/usage"
	httpapi "mintgate/internal/http"
	"mintgate/internal/jwttoken"
	"mintgate/internal/platform/config"
	"mintgate/internal/platform/httpserver"
	"mintgate/internal/platform/logger"
	"mintgate/internal/platform/postgres"
	"mintgate/internal/platform/redis"
	"mintgate/internal/policy"
	policyhandler "mintgate/internal/policy/handler"
	policymetrics "mintgate/internal/policy/metrics"
	"mintgate/internal/policy/store/catalog"
	"mintgate/internal/readiness"
	"mintgate/internal/readiness/adapters"
	readinesshandler "mintgate/internal/readiness/handler"
	readinessmetrics "mintgate/internal/readiness/metrics"
	evidencestore "mintgate/internal/readiness/store/evidence"
	audit "mintgate/pkg/platform/audit"
	"mintgate/pkg/platform/audit/publisher"
	kafkasink "mintgate/pkg/platform/audit/sink/kafka"
	auditmemory "mintgate/pkg/platform/audit/store/memory"
	auditpostgres "mintgate/pkg/platform/audit/store/postgres"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx := context.Background()

	db, err := postgres.New(cfg.PostgresDSN)
	if err != nil {
		fatal(log, "postgres connection failed", err)
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		fatal(log, "redis connection failed", err)
	}

	// Audit trail: durable copy in postgres when available, otherwise
	// in-memory; a kafka sink mirrors events to downstream consumers.
	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if db != nil {
		auditStore = auditpostgres.New(db.DB)
	}
	publisherOpts := []publisher.Option{
		publisher.WithAsyncBuffer(cfg.AuditBuffer),
		publisher.WithLogger(log),
	}
	var sink *kafkasink.Sink
	if len(cfg.KafkaBrokers) > 0 {
		sink, err = kafkasink.New(cfg.KafkaBrokers, kafkasink.WithLogger(log))
		if err != nil {
			fatal(log, "kafka connection failed", err)
		}
		publisherOpts = append(publisherOpts, publisher.WithSink(sink))
	}
	auditPublisher := publisher.NewPublisher(auditStore, publisherOpts...)

	// Entitlement: usage counters in redis when available so limits hold
	// across instances.
	var usage entitlementservice.Store = usagestore.NewInMemory()
	if redisClient != nil {
		usage = usagestore.NewRedis(redisClient.Client)
	}
	entitlementSvc, err := entitlementservice.New(usage,
		entitlementservice.WithLogger(log),
		entitlementservice.WithAuditPublisher(auditPublisher),
		entitlementservice.WithMetrics(entitlementmetrics.New()),
	)
	if err != nil {
		fatal(log, "entitlement service init failed", err)
	}

	// Policy: rule catalog from postgres when available, seeded in-memory
	// table otherwise.
	var ruleCatalog policy.Catalog = catalog.NewInMemoryCatalog(catalog.DefaultVersion, catalog.SeedRules())
	if db != nil {
		ruleCatalog, err = catalog.NewPostgresCatalog(ctx, db.DB)
		if err != nil {
			fatal(log, "rule catalog load failed", err)
		}
	}
	policySvc, err := policy.New(ruleCatalog,
		policy.WithLogger(log),
		policy.WithAuditPublisher(auditPublisher),
		policy.WithMetrics(policymetrics.New()),
	)
	if err != nil {
		fatal(log, "policy service init failed", err)
	}

	// Readiness: upstream account and KYC providers fall back to mocks so
	// the service runs standalone.
	var accounts readiness.AccountProbe = adapters.MockAccountStateClient{}
	if cfg.AccountServiceURL != "" {
		accounts = adapters.NewAccountStateClient(cfg.AccountServiceURL)
	}
	var kyc readiness.KycProvider = adapters.MockKycClient{}
	if cfg.KycServiceURL != "" {
		kyc = adapters.NewKycClient(cfg.KycServiceURL, cfg.KycAPIKey)
	}
	var evidence readiness.EvidenceStore = evidencestore.NewInMemory()
	if db != nil {
		evidence = evidencestore.NewPostgres(db.DB)
	}
	readinessSvc, err := readiness.New(entitlementSvc, accounts, kyc, evidence,
		readiness.WithLogger(log),
		readiness.WithAuditPublisher(auditPublisher),
		readiness.WithMetrics(readinessmetrics.New()),
		readiness.WithTracer(otel.Tracer("mintgate/readiness")),
		readiness.WithCacheTTL(cfg.ReadinessCacheTTL),
	)
	if err != nil {
		fatal(log, "readiness service init failed", err)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	healthChecks := map[string]httpapi.HealthChecker{}
	if db != nil {
		healthChecks["postgres"] = db
	}
	if redisClient != nil {
		healthChecks["redis"] = redisClient
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		TokenValidator: jwttoken.NewMiddlewareAdapter(jwtService),
		Handlers: []httpapi.Registrar{
			readinesshandler.New(readinessSvc, log),
			entitlementhandler.New(entitlementSvc, log),
			policyhandler.New(policySvc, log),
		},
		HealthChecks: healthChecks,
	})

	srv := httpserver.New(cfg.Addr, router)

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting mintgate", "addr", cfg.Addr,
			"postgres", db != nil,
			"redis", redisClient != nil,
			"kafka", sink != nil,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "server error", err)
		}
	}()

	<-shutdownCtx.Done()
	log.Info("shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(timeoutCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	// Drain buffered audit events before closing the backends they write to.
	auditPublisher.Close()
	if sink != nil {
		sink.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
