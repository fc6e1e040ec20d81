package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"eventstaff_backend/database"
	"eventstaff_backend/internal/app"
	"eventstaff_backend/internal/config"
	"eventstaff_backend/internal/logger"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "staffctl",
		Short:        "EventStaff operations CLI",
		Long:         `Maintenance jobs for the EventStaff backend: migrations, subscription upkeep, search reindexing and payment reminders.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "Path to the yaml config")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(resetCountersCmd())
	rootCmd.AddCommand(expirePremiumCmd())
	rootCmd.AddCommand(reindexCmd())
	rootCmd.AddCommand(watchPaymentsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Server.Env)
	return cfg, nil
}

func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.ConnectGorm(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// withApp builds the fully wired app against the configured backends.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, db, err := connect()
	if err != nil {
		return err
	}
	deps, closers := app.ConnectDeps(ctx, cfg)
	a := app.New(cfg, db, deps)
	defer func() {
		a.Close()
		for _, c := range closers {
			_ = c()
		}
	}()
	return fn(a)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table and index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			return database.AutoMigrate(db)
		},
	}
}

func resetCountersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-counters",
		Short: "Zero monthly post counters left over from earlier months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				n, err := a.Repos.Subscription.ResetStaleCounters(a.DB.WithContext(cmd.Context()), time.Now())
				if err != nil {
					return fmt.Errorf("reset counters: %w", err)
				}
				fmt.Printf("Reset %d subscription counters\n", n)
				return nil
			})
		},
	}
}

func expirePremiumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-premium",
		Short: "Move lapsed premium plans back to free",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				n, err := a.Repos.Subscription.ExpirePremium(a.DB.WithContext(cmd.Context()), time.Now())
				if err != nil {
					return fmt.Errorf("expire premium: %w", err)
				}
				fmt.Printf("Expired %d premium plans\n", n)
				return nil
			})
		},
	}
}

func reindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Push every active event to the Elasticsearch index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				n, err := a.Services.EventService.Reindex(a.DB.WithContext(cmd.Context()))
				if err != nil {
					return fmt.Errorf("reindex after %d events: %w", n, err)
				}
				fmt.Printf("Indexed %d events\n", n)
				return nil
			})
		},
	}
}

func watchPaymentsCmd() *cobra.Command {
	var loop bool

	cmd := &cobra.Command{
		Use:   "watch-payments",
		Short: "Remind clients about shifts unpaid past the payment window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				if loop {
					a.PaymentDueWatcher.Start(cmd.Context())
					<-cmd.Context().Done()
					a.PaymentDueWatcher.Stop()
					return nil
				}
				n, err := a.PaymentDueWatcher.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("Sent %d overdue reminders\n", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&loop, "loop", false, "Keep running on the configured interval until interrupted")
	return cmd
}
