package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"

	"clinicbook/backend/internal/catalog"
	"clinicbook/backend/internal/config"
	"clinicbook/backend/internal/notify"
	"clinicbook/backend/internal/ratelimit"
	"clinicbook/backend/internal/service/bookings"
	"clinicbook/backend/internal/service/careers"
	"clinicbook/backend/internal/store"
	"clinicbook/backend/internal/store/memory"
	"clinicbook/backend/internal/store/postgres"
	grpcTransport "clinicbook/backend/internal/transport/grpc"
	"clinicbook/backend/internal/transport/httpapi"
)

func runServe(ctx context.Context, log *slog.Logger, cfg config.Config) error {
	log.Info("starting",
		slog.String("grpc_addr", cfg.GRPCAddr()),
		slog.String("http_addr", cfg.HTTPAddr),
		slog.String("store", cfg.StoreDriver),
		slog.String("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ref, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Error("catalog load failed", slog.Any("err", err), slog.String("file", cfg.CatalogFile))
		return err
	}
	log.Info("catalog loaded", slog.Int("providers", len(ref.Providers)), slog.Int("postings", len(ref.Postings)))

	bookingRepo, applicationRepo, closeStore, err := openStore(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, err := buildNotifier(log, cfg)
	if err != nil {
		log.Error("notifier setup failed", slog.Any("err", err))
		return err
	}

	bookingSvc := bookings.NewService(bookingRepo, ref.Providers, notifier, log)
	careersSvc := careers.NewService(applicationRepo, ref.Postings, notifier, log,
		careers.WithHRContact(notify.Recipient{Name: "HR", Email: cfg.HREmail}),
	)
	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpcTransport.RequestTimeout(cfg.GRPCRequestTimeout),
			grpcTransport.RateLimit(limiter, log, grpcTransport.RateLimitedMethods...),
		),
	)
	grpcTransport.RegisterBookingServiceServer(grpcServer, grpcTransport.NewBookingServer(bookingSvc, log))
	grpcTransport.RegisterCareersServiceServer(grpcServer, grpcTransport.NewCareersServer(careersSvc, log))

	lis, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		log.Error("grpc listen failed", slog.Any("err", err), slog.String("grpc_addr", cfg.GRPCAddr()))
		_ = notifier.Close(context.Background())
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(bookingSvc, careersSvc, httpapi.Options{
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.HTTPRequestTimeout,
			Limiter:        limiter,
		}, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("servers started", slog.String("grpc_addr", cfg.GRPCAddr()), slog.String("http_addr", cfg.HTTPAddr))

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case serveErr = <-errCh:
		log.Error("server stopped with error", slog.Any("err", serveErr))
	}

	shutdown(log, grpcServer, httpServer, notifier, cfg.ShutdownTimeout)
	return serveErr
}

func openStore(ctx context.Context, log *slog.Logger, cfg config.Config) (store.BookingRepository, store.ApplicationRepository, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Info("using in-memory store")
		return memory.NewBookingRepo(), memory.NewApplicationRepo(), func() {}, nil
	}

	pool := postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	}
	log.Info("connecting to database", append(databaseLogArgs(cfg.DatabaseURL), slog.Any("pool", pool))...)
	db, err := postgres.Open(ctx, cfg.DatabaseURL, pool)
	if err != nil {
		args := append([]any{slog.Any("err", err)}, databaseLogArgs(cfg.DatabaseURL)...)
		log.Error("database connection failed", args...)
		return nil, nil, nil, err
	}

	closeDB := func() {
		if err := postgres.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}

	if cfg.DBMigrate {
		applied, err := postgres.Migrate(ctx, db)
		if err != nil {
			log.Error("database migration failed", slog.Any("err", err))
			closeDB()
			return nil, nil, nil, err
		}
		log.Info("database migrated", slog.Int("applied", applied))
	}

	return postgres.NewBookingRepo(db), postgres.NewApplicationRepo(db), closeDB, nil
}

// buildNotifier fans out to the log plus whichever delivery channels are
// configured, all behind one async queue.
func buildNotifier(log *slog.Logger, cfg config.Config) (*notify.Async, error) {
	channels := notify.Multi{notify.NewLogNotifier(log)}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, err
		}
		// The staff chat belongs to the front desk; HR gets applications by email.
		channels = append(channels, notify.Filter(tg, notify.KindBookingCreated))
		log.Info("telegram notifications enabled")
	}

	if cfg.SendGridAPIKey != "" && cfg.EmailFrom != "" {
		channels = append(channels, notify.NewEmailNotifier(cfg.SendGridAPIKey, cfg.EmailFrom, map[notify.Kind]string{
			notify.KindBookingCreated:       cfg.BookingsEmail,
			notify.KindApplicationSubmitted: cfg.HREmail,
		}))
		log.Info("email notifications enabled")
	}

	return notify.NewAsync(channels, cfg.NotifyQueueSize, cfg.NotifyTimeout, log), nil
}

func shutdown(log *slog.Logger, g *grpc.Server, h *http.Server, n *notify.Async, timeout time.Duration) {
	log.Info("shutting down", slog.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := h.Shutdown(ctx); err != nil {
			log.Warn("http graceful shutdown failed", slog.Any("err", err))
		}
	}()
	go func() {
		defer wg.Done()
		done := make(chan struct{})
		go func() {
			g.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
			log.Info("grpc server stopped")
		case <-ctx.Done():
			log.Warn("grpc graceful shutdown timed out; forcing stop")
			g.Stop()
		}
	}()
	wg.Wait()

	if err := n.Close(ctx); err != nil {
		log.Warn("notification queue not drained", slog.Any("err", err))
	}
}
