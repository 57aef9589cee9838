package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/bike-rental-aggregation/internal/api/http"
	"github.com/i474232898/bike-rental-aggregation/internal/config"
	"github.com/i474232898/bike-rental-aggregation/internal/logging"
	"github.com/i474232898/bike-rental-aggregation/internal/rental"
	"github.com/i474232898/bike-rental-aggregation/internal/rental/sources"
	"github.com/i474232898/bike-rental-aggregation/internal/report"
	"github.com/i474232898/bike-rental-aggregation/internal/scheduler"
	"github.com/i474232898/bike-rental-aggregation/internal/store"
)

var cfg *config.AppConfig

func main() {
	root := &cobra.Command{
		Use:           "bike-rental-aggregation",
		Short:         "Summary and grouped statistics over bike-share rentals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if f := cmd.Flags().Lookup("dataset"); f != nil && f.Changed {
				cfg.DatasetPath = f.Value.String()
			}
			if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
				cfg.LogLevel = f.Value.String()
			}
			return logging.Setup(os.Stderr, cfg.LogLevel)
		},
	}
	root.PersistentFlags().String("dataset", "", "path of a local dataset CSV (overrides DATASET_PATH and DATASET_URL)")
	root.PersistentFlags().String("log-level", "info", "log level (overrides LOG_LEVEL)")

	root.AddCommand(serveCmd(), reportCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newService() *rental.Service {
	var src rental.Source
	if cfg.DatasetPath != "" {
		src = sources.NewFileSource(cfg.DatasetPath)
	} else {
		src = sources.NewHTTPSource(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.DatasetURL)
	}
	return rental.NewService(store.NewMemoryStore(cfg.StoreMaxHistory), src)
}

func serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = cfg.Port
			}
			service := newService()

			loadCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout*4)
			_, err := service.Reload(loadCtx)
			cancel()
			if err != nil {
				// keep serving; the scheduler may succeed later
				log.WithError(err).Error("initial dataset load failed")
			}

			sched := scheduler.New(cfg.RefreshInterval, cfg.HTTPTimeout*4, service)
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer sched.Stop()

			app := httpapi.NewApp(service)
			go func() {
				log.WithField("port", port).Info("HTTP server listening")
				if err := app.Listen(":" + port); err != nil {
					log.WithError(err).Error("fiber server stopped")
				}
			}()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.WithError(err).Error("error during shutdown")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

func reportCmd() *cobra.Command {
	var (
		start, end string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard statistics for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseFlagDate("start", start)
			if err != nil {
				return err
			}
			to, err := parseFlagDate("end", end)
			if err != nil {
				return err
			}

			service := newService()
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout*4)
			defer cancel()
			if _, err := service.Reload(ctx); err != nil {
				return err
			}

			d, err := service.Dashboard(from, to)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			return report.WriteText(cmd.OutOrStdout(), d)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day of the range, YYYY-MM-DD (default: earliest date in the dataset)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the range, YYYY-MM-DD (default: latest date in the dataset)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a text report")
	return cmd
}

func parseFlagDate(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", name, v)
	}
	return t, nil
}
