package instance

import (
	"context"
	"errors"
	"sync"

	"beammp-manager/core/history"
	"beammp-manager/core/lifecycle"
	"beammp-manager/core/process"
	"beammp-manager/core/serverconfig"
	"beammp-manager/core/storage"

	"go.uber.org/zap"
)

// ErrNotRunning is returned by Stop when no server process is tracked.
var ErrNotRunning = errors.New("server is not running")

// Status describes the managed instance.
type Status struct {
	State   string `json:"state"`
	Running bool   `json:"running"`
	PID     int    `json:"pid,omitempty"`
	Version string `json:"version,omitempty"`
}

// Service serializes lifecycle operations for the HTTP API and owns the
// running server process between requests.
type Service struct {
	mu            sync.Mutex
	manager       *lifecycle.Manager
	versions      lifecycle.Versions
	authoritative serverconfig.Authoritative
	history       history.Recorder
	serverID      string
	instance      *process.Instance
	logger        *zap.Logger
}

// NewService creates a new instance service.
func NewService(manager *lifecycle.Manager, versions lifecycle.Versions, authoritative serverconfig.Authoritative, recorder history.Recorder, logger *zap.Logger) *Service {
	if recorder == nil {
		recorder = history.Noop{}
	}
	return &Service{
		manager:       manager,
		versions:      versions,
		authoritative: authoritative,
		history:       recorder,
		serverID:      authoritative.ServerID,
		logger:        logger,
	}
}

// Install installs the latest release.
func (s *Service) Install(ctx context.Context) lifecycle.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Install(ctx, s.authoritative)
}

// Update installs the latest release if it differs from the installed one.
func (s *Service) Update(ctx context.Context) lifecycle.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Update(ctx)
}

// CheckUpdate compares the installed and latest versions.
func (s *Service) CheckUpdate(ctx context.Context) (lifecycle.UpdateStatus, error) {
	return s.manager.CheckUpdate(ctx)
}

// Start reconciles the configuration and launches the server.
func (s *Service) Start(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, err := s.manager.Start(ctx, s.authoritative)
	if err != nil {
		return s.status(), err
	}
	s.instance = inst
	return s.status(), nil
}

// Stop asks the running server to exit.
func (s *Service) Stop(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instance == nil || !s.instance.Running() {
		s.instance = nil
		return s.status(), ErrNotRunning
	}
	s.manager.Stop(ctx, s.instance)
	return s.status(), nil
}

// Restore reinstalls an archived release.
func (s *Service) Restore(ctx context.Context, tag string) lifecycle.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Restore(ctx, tag)
}

// Releases lists archived releases.
func (s *Service) Releases(ctx context.Context) ([]storage.ArchivedRelease, error) {
	return s.manager.Archived(ctx)
}

// History returns recent lifecycle events.
func (s *Service) History(ctx context.Context, limit int) ([]history.Event, error) {
	return s.history.Recent(ctx, s.serverID, limit)
}

// Status reports the current state of the instance.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Service) status() Status {
	st := Status{State: string(s.manager.State())}
	if s.instance != nil && s.instance.Running() {
		st.Running = true
		st.PID = s.instance.PID()
	}
	if v, ok := s.versions.ReadLocal(); ok {
		st.Version = v
	}
	return st
}

// ScheduledCheck checks for a newer release and, when autoUpdate is set and
// the server is not running, applies it.
func (s *Service) ScheduledCheck(ctx context.Context, autoUpdate bool) error {
	status, err := s.CheckUpdate(ctx)
	if err != nil {
		return err
	}
	if !status.Available {
		s.logger.Debug("No update available", zap.String("version", status.Local))
		return nil
	}

	s.logger.Info("Update available", zap.String("installed", status.Local), zap.String("latest", status.Remote))
	if !autoUpdate {
		return nil
	}
	if s.Status().Running {
		s.logger.Info("Auto update deferred while the server is running")
		return nil
	}

	out := s.Update(ctx)
	if !out.OK() {
		return out.Err
	}
	s.logger.Info("Auto update applied", zap.String("notice", out.Notice))
	return nil
}

// Shutdown stops a running server and waits for it to exit or ctx to end.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	inst := s.instance
	if inst != nil && inst.Running() {
		s.manager.Stop(ctx, inst)
	}
	s.mu.Unlock()

	if inst == nil {
		return nil
	}
	select {
	case <-inst.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
