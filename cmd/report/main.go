package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	reportapp "github.com/shopdesk/backend/internal/application/report"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/shopdesk/backend/internal/infrastructure/logger"
	"github.com/shopdesk/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	view := flag.String("view", "overview", "View to print: overview, analytics, inventory or all")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel("warn"))))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	dashboard := reportapp.NewDashboardService(persistence.NewGormDashboardRepository(db.DB), reportapp.DashboardConfig{
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
	}, log)

	if err := printViews(context.Background(), os.Stdout, dashboard, *view); err != nil {
		log.Fatal("Failed to print report", zap.String("view", *view), zap.Error(err))
	}
}

// dashboardViews is the part of the dashboard service the report prints
type dashboardViews interface {
	Overview(ctx context.Context) (*reportapp.OverviewResponse, error)
	Analytics(ctx context.Context) (*reportapp.AnalyticsResponse, error)
	Inventory(ctx context.Context) (*reportapp.InventoryResponse, error)
}

func printViews(ctx context.Context, w io.Writer, d dashboardViews, view string) error {
	all := view == "all"
	known := false

	if all || view == "overview" {
		known = true
		o, err := d.Overview(ctx)
		if err != nil {
			return err
		}
		if err := renderOverview(w, o); err != nil {
			return err
		}
	}
	if all || view == "analytics" {
		known = true
		a, err := d.Analytics(ctx)
		if err != nil {
			return err
		}
		if err := renderAnalytics(w, a); err != nil {
			return err
		}
	}
	if all || view == "inventory" {
		known = true
		inv, err := d.Inventory(ctx)
		if err != nil {
			return err
		}
		if err := renderInventory(w, inv); err != nil {
			return err
		}
	}

	if !known {
		return fmt.Errorf("unknown view %q", view)
	}
	return nil
}
