package integrity

import (
	"context"
	"errors"
	"time"

	"beammp-manager/core/history"
	"beammp-manager/core/lifecycle"
	"beammp-manager/core/reconcile"
	"beammp-manager/core/serverconfig"
	"beammp-manager/core/storage"
	"beammp-manager/core/version"
	"beammp-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNoDatabase is returned by history checks without a database.
	ErrNoDatabase = errors.New("history database is not configured")
	// ErrNoArchive is returned by archive checks without object storage.
	ErrNoArchive = errors.New("release archive is not configured")
)

const releaseCacheTTL = 30 * time.Second

// Service handles integrity checks.
type Service struct {
	manager       *lifecycle.Manager
	authoritative serverconfig.Authoritative
	client        storage.Client
	storageCfg    storage.Config
	db            *gorm.DB
	logger        *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil.
func NewService(manager *lifecycle.Manager, authoritative serverconfig.Authoritative, client storage.Client, storageCfg storage.Config, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		manager:       manager,
		authoritative: authoritative,
		client:        client,
		storageCfg:    storageCfg,
		db:            db,
		logger:        logger,
	}
}

// CheckInstall reports missing files in the instance directory.
func (s *Service) CheckInstall() lifecycle.Validity {
	return s.manager.CheckInstall()
}

// CheckImport reports missing files in an installation to adopt.
func (s *Service) CheckImport(path string) lifecycle.Validity {
	return s.manager.IsImportValid(path)
}

// CheckConfig inspects the instance configuration document.
func (s *Service) CheckConfig() (*checks.ConfigReport, error) {
	return checks.CheckConfig(s.manager.Layout().ConfigPath(), s.authoritative)
}

// CheckHistory verifies the history table schema.
func (s *Service) CheckHistory() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckHistorySchema(s.db)
}

// CheckArchive verifies the archive bucket.
func (s *Service) CheckArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	if s.client == nil {
		return nil, ErrNoArchive
	}
	return checks.CheckArchive(ctx, s.client, s.storageCfg.Bucket, s.authoritative.ServerID)
}

// FixArchive creates the archive bucket.
func (s *Service) FixArchive(ctx context.Context) error {
	if s.client == nil {
		return ErrNoArchive
	}
	return checks.FixArchive(ctx, s.client, s.storageCfg.Bucket, s.storageCfg.Region, s.logger)
}

func (s *Service) releaseSpec() (*reconcile.Spec, *storage.Archive, error) {
	if s.client == nil {
		return nil, nil, ErrNoArchive
	}
	archive := storage.NewArchive(s.client, s.storageCfg.Bucket, s.logger)
	spec := &reconcile.Spec{
		ServerID: s.authoritative.ServerID,
		Archive:  archive,
		Local:    version.NewStore(s.manager.Layout().ManifestPath()),
		CacheTTL: releaseCacheTTL,
	}
	if s.db != nil {
		spec.History = history.NewStore(s.db)
	}
	return spec, archive, nil
}

// CheckReleases cross-checks recorded, archived and installed release tags.
func (s *Service) CheckReleases(ctx context.Context) (*reconcile.ReleasePlan, error) {
	spec, _, err := s.releaseSpec()
	if err != nil {
		return nil, err
	}
	return reconcile.ReconcileWithPlan(ctx, spec)
}

// FixReleases archives the installed release when the archive lacks it and
// returns the plan it executed.
func (s *Service) FixReleases(ctx context.Context) (*reconcile.ReleasePlan, int, error) {
	spec, archive, err := s.releaseSpec()
	if err != nil {
		return nil, 0, err
	}
	plan, err := reconcile.ReconcileWithPlan(ctx, spec)
	if err != nil {
		return nil, 0, err
	}
	executed, err := reconcile.ApplyPlan(ctx, spec, archive, s.manager.Layout().ExecutablePath(), plan, reconcile.Options{Confirmed: true})
	if err != nil {
		return plan, executed, err
	}
	if executed > 0 {
		s.logger.Info("Archived installed release", zap.Int("actions", executed))
	}
	return plan, executed, nil
}
