package cmd

import (
	"fmt"

	"snipe-netbox-sync/core/config"
	"snipe-netbox-sync/core/database"
	"snipe-netbox-sync/core/logger"
	"snipe-netbox-sync/core/netbox"
	"snipe-netbox-sync/core/snipe"
	"snipe-netbox-sync/core/storage"
	"snipe-netbox-sync/feature/inventory"

	"go.uber.org/zap"
)

// app holds the components shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *netbox.Client
	service  *inventory.Service
}

// newApp loads configuration and wires the sync service. The run history and
// snapshot archive are optional; failing to set them up only logs a warning.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	provider, err := snipe.NewClient(cfg.Snipe)
	if err != nil {
		return nil, fmt.Errorf("failed to create snipe client: %w", err)
	}
	registry, err := netbox.NewClient(cfg.NetBox)
	if err != nil {
		return nil, fmt.Errorf("failed to create netbox client: %w", err)
	}

	rules, err := inventory.ParseFallbackRules(cfg.Sync.FallbackSites)
	if err != nil {
		return nil, err
	}

	var history *inventory.History
	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Run history disabled, database connection failed", zap.Error(err))
		} else {
			history = inventory.NewHistory(db)
			if err := history.Migrate(); err != nil {
				logg.Warn("Run history disabled", zap.Error(err))
				history = nil
			}
		}
	}

	var snapshots *inventory.Snapshots
	if cfg.Storage.Enabled {
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Snapshot archive disabled", zap.Error(err))
		} else {
			snapshots = inventory.NewSnapshots(client, cfg.Storage.Bucket, cfg.Storage.Retention, logg)
		}
	}

	service := inventory.NewService(provider, registry, history, snapshots, inventory.Options{
		DefaultSiteName: cfg.Sync.DefaultSiteName,
		DefaultSiteID:   cfg.NetBox.DefaultSiteID,
		FallbackSites:   rules,
	}, logg)

	return &app{cfg: cfg, logger: logg, registry: registry, service: service}, nil
}
