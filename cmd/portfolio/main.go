package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/arifshehab/Capstone-Project/docs"
	"github.com/arifshehab/Capstone-Project/internal/cache"
	"github.com/arifshehab/Capstone-Project/internal/client/marketdata"
	"github.com/arifshehab/Capstone-Project/internal/client/quiver"
	"github.com/arifshehab/Capstone-Project/internal/client/sgs"
	"github.com/arifshehab/Capstone-Project/internal/config"
	cronrunner "github.com/arifshehab/Capstone-Project/internal/cron"
	"github.com/arifshehab/Capstone-Project/internal/db"
	"github.com/arifshehab/Capstone-Project/internal/handler"
	"github.com/arifshehab/Capstone-Project/internal/logger"
	"github.com/arifshehab/Capstone-Project/internal/repository"
	"github.com/arifshehab/Capstone-Project/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	var envOnly bool

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Personal stock and bond portfolio tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfgPath, envOnly)
		},
	}

	defaultPath := os.Getenv("PF_CONFIG")
	if defaultPath == "" {
		defaultPath = "config/config.yaml"
	}
	defaultEnvOnly := false
	if raw := os.Getenv("PF_ENV_ONLY"); raw != "" {
		defaultEnvOnly = strings.EqualFold(raw, "true") || raw == "1"
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "config file path")
	root.PersistentFlags().BoolVar(&envOnly, "env-only", defaultEnvOnly, "read configuration from the environment only")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the web server and scheduled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfgPath, envOnly)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfgPath, envOnly, func(ctx context.Context, a *app) error {
				a.logger.Info("schema up to date", zap.String("driver", a.cfg.DB.Driver))
				return nil
			})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "refresh-quotes",
		Short: "Refresh the stored quote of every shortlisted symbol once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfgPath, envOnly, func(ctx context.Context, a *app) error {
				res, err := a.shortlist.RefreshAll(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "total=%d updated=%d failed=%d\n", res.Total, res.Updated, res.Failed)
				return nil
			})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "sync-bonds",
		Short: "Fetch the bond issue catalog once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfgPath, envOnly, func(ctx context.Context, a *app) error {
				if a.catalog == nil {
					return errors.New("bond_catalog is disabled")
				}
				n, err := a.catalog.Sync(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "issues=%d\n", n)
				return nil
			})
		},
	})
	return root
}

type app struct {
	cfg       config.Config
	logger    *zap.Logger
	store     repository.Repository
	cache     cache.Store
	gateway   marketdata.Gateway
	shortlist *service.ShortlistService
	trades    *service.TradeService
	views     *service.ViewService
	catalog   *service.BondCatalogService
	analytics *service.AnalyticsService
}

func newApp(cfgPath string, envOnly bool) (*app, error) {
	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	store, err := db.OpenStore(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	quoteCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Warn("cache unavailable, quotes will not be cached", zap.Error(err))
		quoteCache = nil
	}
	gateway, err := marketdata.New(cfg.MarketData, quoteCache, cfg.Cache.QuoteTTL, log)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("market data: %w", err)
	}

	shortlist := &service.ShortlistService{Repo: store, Gateway: gateway, Logger: log}
	a := &app{
		cfg:       cfg,
		logger:    log,
		store:     store,
		cache:     quoteCache,
		gateway:   gateway,
		shortlist: shortlist,
		trades:    &service.TradeService{Repo: store, Gateway: gateway, Shortlist: shortlist, Logger: log},
		views:     &service.ViewService{Repo: store},
		analytics: &service.AnalyticsService{
			Source: quiver.New(cfg.Analytics.BaseURL, cfg.Analytics.Token, cfg.Analytics.Timeout),
		},
	}
	if cfg.BondCatalog.Enabled {
		a.catalog = &service.BondCatalogService{
			Repo:   store,
			Source: sgs.New(cfg.BondCatalog.URL, cfg.BondCatalog.Timeout),
			Logger: log,
		}
	}
	return a, nil
}

func (a *app) close() {
	if closer, ok := a.cache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("store close failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func withApp(cfgPath string, envOnly bool, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cfgPath, envOnly)
	if err != nil {
		return err
	}
	defer a.close()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return fn(ctx, a)
}

func runServe(cfgPath string, envOnly bool) error {
	a, err := newApp(cfgPath, envOnly)
	if err != nil {
		return err
	}
	defer a.close()
	log := a.logger

	if strings.EqualFold(a.cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := handler.NewRouter(handler.Deps{
		Store:     a.store,
		Trades:    a.trades,
		Views:     a.views,
		Shortlist: a.shortlist,
		Catalog:   a.catalog,
		Analytics: a.analytics,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.Cron.Enabled {
		runner := cronrunner.New(log, ctx, 10*time.Minute)
		if _, err := runner.Add("quote_refresh", a.cfg.Cron.QuoteRefresh, func(ctx context.Context) error {
			res, err := a.shortlist.RefreshAll(ctx)
			if err != nil {
				return err
			}
			log.Info("quotes refreshed", zap.Int("total", res.Total), zap.Int("updated", res.Updated), zap.Int("failed", res.Failed))
			return nil
		}); err != nil {
			return fmt.Errorf("schedule quote_refresh: %w", err)
		}
		if a.catalog != nil {
			if _, err := runner.Add("bond_catalog", a.cfg.Cron.BondCatalog, func(ctx context.Context) error {
				_, err := a.catalog.Sync(ctx)
				return err
			}); err != nil {
				return fmt.Errorf("schedule bond_catalog: %w", err)
			}
		}
		runner.Start()
		defer runner.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", a.cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case serveErr = <-errCh:
		log.Error("server error", zap.Error(serveErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown failed", zap.Error(err))
	}
	return serveErr
}
