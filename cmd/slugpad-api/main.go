package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/slugpad/slugpad/internal/config"
	"github.com/slugpad/slugpad/internal/database"
	"github.com/slugpad/slugpad/internal/dedup"
	"github.com/slugpad/slugpad/internal/logging"
	"github.com/slugpad/slugpad/internal/notes"
	"github.com/slugpad/slugpad/internal/server"
	"github.com/slugpad/slugpad/internal/session"
	"github.com/slugpad/slugpad/internal/slug"
	"github.com/slugpad/slugpad/internal/theme"
)

var (
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "slugpad-api",
		Short: "Slugpad note service",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	setupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("http-address", defaults.GetString("http.address"), "HTTP listen address")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Int("autosave-quiet-ms", defaults.GetInt("autosave.quiet_ms"), "Autosave debounce window in milliseconds")
	cmd.PersistentFlags().Int("saved-flash-ms", defaults.GetInt("autosave.saved_flash_ms"), "Saved indicator duration in milliseconds")
	cmd.PersistentFlags().Int("dedup-entry-ttl-s", defaults.GetInt("dedup.entry_ttl_s"), "Load dedup entry TTL in seconds")
	cmd.PersistentFlags().Int("dedup-sweep-interval-s", defaults.GetInt("dedup.sweep_interval_s"), "Load dedup sweep interval in seconds")
	cmd.PersistentFlags().Int("session-idle-ttl-minutes", defaults.GetInt("sessions.idle_ttl_minutes"), "Idle session eviction TTL in minutes")

	bindFlag(cmd, "http.address", "http-address")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "autosave.quiet_ms", "autosave-quiet-ms")
	bindFlag(cmd, "autosave.saved_flash_ms", "saved-flash-ms")
	bindFlag(cmd, "dedup.entry_ttl_s", "dedup-entry-ttl-s")
	bindFlag(cmd, "dedup.sweep_interval_s", "dedup-sweep-interval-s")
	bindFlag(cmd, "sessions.idle_ttl_minutes", "session-idle-ttl-minutes")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runServer(ctx context.Context) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.OpenSQLite(appConfig.DatabasePath, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	store, err := notes.NewStore(notes.StoreConfig{
		Database:   db,
		Clock:      time.Now,
		IDProvider: notes.NewUUIDProvider(),
		Themes:     theme.NewPalette(theme.PaletteConfig{}),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := dedup.NewRegistry(dedup.RegistryConfig{
		EntryTTL:      appConfig.DedupEntryTTL,
		SweepInterval: appConfig.DedupSweep,
	})
	go registry.Run(signalCtx)

	sessions, err := session.NewManager(session.ManagerConfig{
		Gateway:     store,
		Registry:    registry,
		Logger:      logger,
		BaseContext: signalCtx,
		QuietPeriod: appConfig.AutosaveQuiet,
		SavedFlash:  appConfig.SavedFlash,
		IdleTTL:     appConfig.SessionIdleTTL,
	})
	if err != nil {
		return err
	}
	defer sessions.Close()
	go sessions.Run(signalCtx)

	handler, err := server.NewHTTPHandler(server.Dependencies{
		Sessions: sessions,
		Notes:    store,
		Slugs:    slug.NewGenerator(slug.GeneratorConfig{}),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    appConfig.HTTPAddress,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", appConfig.HTTPAddress))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
