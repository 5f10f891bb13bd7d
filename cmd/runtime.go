package cmd

import (
	"fmt"

	"beammp-manager/core/config"
	"beammp-manager/core/database"
	"beammp-manager/core/history"
	"beammp-manager/core/lifecycle"
	"beammp-manager/core/logger"
	"beammp-manager/core/metrics"
	"beammp-manager/core/process"
	"beammp-manager/core/release"
	"beammp-manager/core/serverconfig"
	"beammp-manager/core/storage"
	"beammp-manager/core/version"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the components shared by every command.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	versions *version.Store
	manager  *lifecycle.Manager
	storage  storage.Client
	db       *gorm.DB
	history  history.Recorder
}

// bootstrap loads the configuration and wires the lifecycle manager. The
// release archive and history database are optional; failing to reach them
// only disables them.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	layout := cfg.Instance.Layout()
	rt := &runtime{
		cfg:      cfg,
		logger:   logg,
		versions: version.NewStore(layout.ManifestPath()),
		history:  history.Noop{},
	}

	deps := lifecycle.Dependencies{
		Releases:  release.NewClient(cfg.Release),
		Versions:  rt.versions,
		Configs:   serverconfig.NewStore(layout.ConfigPath()),
		Processes: process.NewController(logg.Named("server")),
		Metrics:   metrics.NewMetrics(),
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Release archive disabled", zap.Error(err))
		} else {
			rt.storage = client
			deps.Archive = storage.NewArchive(client, cfg.Storage.Bucket, logg)
		}
	}

	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			store := history.NewStore(db)
			if err := store.Migrate(); err != nil {
				logg.Warn("History disabled", zap.Error(err))
			} else {
				rt.db = db
				rt.history = store
				deps.History = store
				logg.Info("Connected to history database")
			}
		}
	}

	rt.manager = lifecycle.New(layout, cfg.Instance.ServerID, deps, logg)
	return rt, nil
}

func (rt *runtime) authoritative() serverconfig.Authoritative {
	return rt.cfg.Instance.Authoritative()
}

func (rt *runtime) close() {
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = rt.logger.Sync()
}
