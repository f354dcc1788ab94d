package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"clinicbook/backend/internal/config"
	"clinicbook/backend/internal/store/postgres"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	serve := func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(envFile)
		if err != nil {
			return err
		}
		return runServe(cmd.Context(), log, cfg)
	}

	rootCmd := &cobra.Command{
		Use:           "clinicbook-server",
		Short:         "Clinic appointment booking and careers backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file merged into the environment when present")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC and HTTP servers",
		RunE:  serve,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(envFile)
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), log, cfg)
		},
	})

	return rootCmd
}

func setup(envFile string) (config.Config, *slog.Logger, error) {
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	cfg, err := config.LoadFile(envFile)
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		return config.Config{}, nil, err
	}

	log = newLogger(parseLogLevel(cfg.LogLevel))
	slog.SetDefault(log)
	return cfg, log, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With(
		slog.String("service", "clinicbook-server"),
	)
}

func runMigrate(ctx context.Context, log *slog.Logger, cfg config.Config) error {
	log.Info("connecting to database", databaseLogArgs(cfg.DatabaseURL)...)
	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{MaxOpenConns: 1})
	if err != nil {
		args := append([]any{slog.Any("err", err)}, databaseLogArgs(cfg.DatabaseURL)...)
		log.Error("database connection failed", args...)
		return err
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}()

	applied, err := postgres.Migrate(ctx, db)
	if err != nil {
		log.Error("database migration failed", slog.Any("err", err))
		return err
	}
	log.Info("database migrated", slog.Int("applied", applied))
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func databaseLogArgs(databaseURL string) []any {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return []any{slog.String("db_url", "invalid")}
	}
	name := strings.TrimPrefix(u.Path, "/")
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "default"
	}
	if host == "" {
		host = "unknown"
	}
	if name == "" {
		name = "unknown"
	}
	return []any{
		slog.String("db_host", host),
		slog.String("db_port", port),
		slog.String("db_name", name),
	}
}
