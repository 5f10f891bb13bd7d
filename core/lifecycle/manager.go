package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"beammp-manager/core/errs"
	"beammp-manager/core/history"
	"beammp-manager/core/process"
	"beammp-manager/core/release"
	"beammp-manager/core/serverconfig"
	"beammp-manager/core/storage"
	"beammp-manager/core/utils"

	"go.uber.org/zap"
)

// Releases resolves and downloads server releases.
type Releases interface {
	ResolveLatest(ctx context.Context) (release.Release, error)
	Download(ctx context.Context, url, dest string) error
}

// Versions reads and writes the installed version manifest.
type Versions interface {
	ReadLocal() (string, bool)
	WriteLocal(version string) error
}

// Configs loads and saves the server configuration document.
type Configs interface {
	Exists() bool
	Load() (serverconfig.Document, error)
	Save(doc serverconfig.Document) error
}

// Processes launches and stops server processes.
type Processes interface {
	Launch(executable, workdir string, env []string) (*process.Instance, error)
	RequestShutdown(inst *process.Instance)
}

// Archive keeps copies of installed executables in object storage.
type Archive interface {
	Store(ctx context.Context, serverID, tag, localPath string) error
	List(ctx context.Context, serverID string) ([]storage.ArchivedRelease, error)
	Fetch(ctx context.Context, serverID, tag, dest string) error
}

// History records lifecycle events.
type History interface {
	Record(ctx context.Context, e history.Event) error
}

// Metrics observes lifecycle operations.
type Metrics interface {
	ObserveOperation(operation string, elapsed time.Duration, err error)
	SetState(state string)
	SetUpdateAvailable(available bool)
}

// Dependencies are the collaborators of a Manager. Archive, History and
// Metrics are optional.
type Dependencies struct {
	Releases  Releases
	Versions  Versions
	Configs   Configs
	Processes Processes
	Archive   Archive
	History   History
	Metrics   Metrics
}

// Manager orchestrates install, update, start and stop of one instance.
//
// Operations must not run concurrently for the same instance; callers
// serialize them. The manager only locks its state field so State can be
// read while an operation is in progress.
type Manager struct {
	layout   Layout
	serverID string
	deps     Dependencies
	logger   *zap.Logger

	mu    sync.RWMutex
	state State
}

// New creates a Manager for the instance described by layout. The initial
// state is derived from the files present in the instance directory.
func New(layout Layout, serverID string, deps Dependencies, logger *zap.Logger) *Manager {
	if deps.History == nil {
		deps.History = history.Noop{}
	}
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	m := &Manager{
		layout:   layout,
		serverID: serverID,
		deps:     deps,
		logger:   logger.With(zap.String("server_id", serverID)),
	}
	m.state = m.diskState()
	deps.Metrics.SetState(string(m.state))
	return m
}

// Layout returns the instance layout.
func (m *Manager) Layout() Layout {
	return m.layout
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
	m.deps.Metrics.SetState(string(s))
}

// transition moves from one state to another only if the current state is
// still from.
func (m *Manager) transition(from, to State) {
	m.mu.Lock()
	changed := m.state == from
	if changed {
		m.state = to
	}
	m.mu.Unlock()
	if changed {
		m.deps.Metrics.SetState(string(to))
	}
}

func (m *Manager) diskState() State {
	if m.IsInstallValid() {
		return StateInstalled
	}
	return StateAbsent
}

// Refresh re-derives a stable state from disk. It is used when the instance
// files change outside of the manager and is ignored while an operation or
// process is in flight.
func (m *Manager) Refresh() {
	m.mu.Lock()
	current := m.state
	if current != StateAbsent && current != StateInstalled {
		m.mu.Unlock()
		return
	}
	next := m.diskState()
	m.state = next
	m.mu.Unlock()

	if next != current {
		m.logger.Info("Instance state changed on disk", zap.String("from", string(current)), zap.String("to", string(next)))
		m.deps.Metrics.SetState(string(next))
	}
}

// Install downloads the latest release into the instance directory, records
// its version and writes a default configuration document if none exists.
// The first failing step aborts the rest.
func (m *Manager) Install(ctx context.Context, a serverconfig.Authoritative) Outcome {
	start := time.Now()
	prev := m.State()
	if prev.busy() {
		return m.finish(ctx, history.OpInstall, "", start, Outcome{Err: ErrServerRunning})
	}

	m.setState(StateInstalling)
	tag, err := m.install(ctx, a)
	if err != nil {
		m.setState(m.diskState())
		m.logger.Error("Install failed", zap.Error(err))
		return m.finish(ctx, history.OpInstall, tag, start, Outcome{Err: err})
	}

	m.setState(StateInstalled)
	m.archive(ctx, tag)
	m.logger.Info("Install completed", zap.String("version", tag))
	return m.finish(ctx, history.OpInstall, tag, start, Outcome{Notice: "installed " + tag})
}

func (m *Manager) install(ctx context.Context, a serverconfig.Authoritative) (string, error) {
	step := func(name string, err error) error {
		return errs.New(errs.KindInstall, name, err)
	}

	if err := os.MkdirAll(m.layout.Dir, 0o755); err != nil {
		return "", step("prepare directory", errs.New(errs.KindIO, "create "+m.layout.Dir, err))
	}

	rel, err := m.deps.Releases.ResolveLatest(ctx)
	if err != nil {
		return "", step("resolve latest release", err)
	}
	m.logger.Info("Downloading release", zap.String("version", rel.Tag), zap.String("url", rel.DownloadURL))

	if err := m.deps.Releases.Download(ctx, rel.DownloadURL, m.layout.ExecutablePath()); err != nil {
		return rel.Tag, step("download", err)
	}
	if err := m.deps.Versions.WriteLocal(rel.Tag); err != nil {
		return rel.Tag, step("record version", err)
	}
	if !m.deps.Configs.Exists() {
		if err := m.deps.Configs.Save(serverconfig.MaterializeDefault(a)); err != nil {
			return rel.Tag, step("materialize config", err)
		}
		m.logger.Info("Default configuration written", zap.String("path", m.layout.ConfigPath()))
	}
	return rel.Tag, nil
}

// CheckUpdate compares the installed version with the latest release
// without changing anything. Errors wrap ErrVersionUnavailable.
func (m *Manager) CheckUpdate(ctx context.Context) (UpdateStatus, error) {
	local, ok := m.deps.Versions.ReadLocal()
	if !ok {
		return UpdateStatus{}, fmt.Errorf("%w: no local version recorded", ErrVersionUnavailable)
	}
	rel, err := m.deps.Releases.ResolveLatest(ctx)
	if err != nil {
		return UpdateStatus{Local: local}, fmt.Errorf("%w: %w", ErrVersionUnavailable, err)
	}

	status := UpdateStatus{Local: local, Remote: rel.Tag, Available: local != rel.Tag}
	m.deps.Metrics.SetUpdateAvailable(status.Available)
	return status, nil
}

// Update installs the latest release when its tag differs from the
// installed one. Equal tags perform no writes.
func (m *Manager) Update(ctx context.Context) Outcome {
	start := time.Now()
	if m.State().busy() {
		return m.finish(ctx, history.OpUpdate, "", start, Outcome{Err: ErrServerRunning})
	}

	local, ok := m.deps.Versions.ReadLocal()
	if !ok {
		err := fmt.Errorf("%w: no local version recorded", ErrVersionUnavailable)
		return m.finish(ctx, history.OpUpdate, "", start, Outcome{Err: err})
	}
	rel, err := m.deps.Releases.ResolveLatest(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrVersionUnavailable, err)
		return m.finish(ctx, history.OpUpdate, local, start, Outcome{Err: err})
	}

	if local == rel.Tag {
		m.deps.Metrics.SetUpdateAvailable(false)
		m.logger.Info("Server is up-to-date", zap.String("version", local))
		return m.finish(ctx, history.OpUpdate, local, start, Outcome{Notice: NoticeUpToDate})
	}

	m.logger.Info("Updating server", zap.String("from", local), zap.String("to", rel.Tag))
	prev := m.State()
	m.setState(StateUpdating)

	if err := m.deps.Releases.Download(ctx, rel.DownloadURL, m.layout.ExecutablePath()); err != nil {
		m.setState(prev)
		err = fmt.Errorf("update to %s: %w", rel.Tag, err)
		m.logger.Error("Update failed", zap.Error(err))
		return m.finish(ctx, history.OpUpdate, rel.Tag, start, Outcome{Err: err})
	}
	if err := m.deps.Versions.WriteLocal(rel.Tag); err != nil {
		m.setState(m.diskState())
		err = fmt.Errorf("update to %s: %w", rel.Tag, err)
		m.logger.Error("Update failed", zap.Error(err))
		return m.finish(ctx, history.OpUpdate, rel.Tag, start, Outcome{Err: err})
	}

	m.setState(m.diskState())
	m.deps.Metrics.SetUpdateAvailable(false)
	m.archive(ctx, rel.Tag)
	return m.finish(ctx, history.OpUpdate, rel.Tag, start, Outcome{Notice: NoticeUpdated})
}

// Start reconciles the configuration document with a, saves it and then
// launches the server. The process is never launched if the document could
// not be loaded, reconciled or saved.
func (m *Manager) Start(ctx context.Context, a serverconfig.Authoritative) (*process.Instance, error) {
	start := time.Now()
	prev := m.State()
	if prev.busy() {
		m.finish(ctx, history.OpStart, "", start, Outcome{Err: ErrServerRunning})
		return nil, ErrServerRunning
	}

	m.setState(StateStarting)
	inst, err := m.start(a)
	if err != nil {
		m.setState(prev)
		m.logger.Error("Start failed", zap.Error(err))
		m.finish(ctx, history.OpStart, "", start, Outcome{Err: err})
		return nil, err
	}

	m.setState(StateRunning)
	go m.track(inst)

	version, _ := m.deps.Versions.ReadLocal()
	m.finish(ctx, history.OpStart, version, start, Outcome{Notice: fmt.Sprintf("started pid %d", inst.PID())})
	return inst, nil
}

func (m *Manager) start(a serverconfig.Authoritative) (*process.Instance, error) {
	doc, err := m.deps.Configs.Load()
	if err != nil {
		return nil, err
	}

	reconciled, report, err := serverconfig.Reconcile(doc, a)
	if err != nil {
		return nil, err
	}
	if report.Changed {
		if err := m.deps.Configs.Save(reconciled); err != nil {
			return nil, err
		}
		m.logger.Info("Configuration reconciled",
			zap.Strings("updated", report.Updated),
			zap.Strings("appended", report.Appended))
	}

	return m.deps.Processes.Launch(m.layout.ExecutablePath(), m.layout.Dir, nil)
}

// track returns the state to installed once inst exits.
func (m *Manager) track(inst *process.Instance) {
	<-inst.Done()
	m.transition(StateRunning, StateInstalled)
	m.transition(StateStopping, StateInstalled)
}

// Stop asks inst to shut down gracefully. It never fails, including for
// instances that have already exited.
func (m *Manager) Stop(ctx context.Context, inst *process.Instance) {
	start := time.Now()
	if inst != nil && inst.Running() {
		m.transition(StateRunning, StateStopping)
	}
	m.deps.Processes.RequestShutdown(inst)
	m.finish(ctx, history.OpStop, "", start, Outcome{Notice: "shutdown requested"})
}

// IsInstallValid reports whether the executable and configuration document
// both exist in the instance directory.
func (m *Manager) IsInstallValid() bool {
	return m.CheckInstall().Valid()
}

// CheckInstall reports which required files are missing from the instance
// directory.
func (m *Manager) CheckInstall() Validity {
	return m.check(m.layout.Dir)
}

// IsImportValid reports which required files are missing from dir, an
// existing server installation to adopt.
func (m *Manager) IsImportValid(dir string) Validity {
	v := m.check(dir)
	if v.Valid() {
		store := serverconfig.NewStore(filepath.Join(dir, m.layout.ConfigFile))
		if doc, err := store.Load(); err == nil {
			v.MissingFields, _ = serverconfig.MissingFields(doc)
		}
	}
	return v
}

func (m *Manager) check(dir string) Validity {
	v := Validity{Path: dir}
	for _, name := range []string{m.layout.Executable, m.layout.ConfigFile} {
		if !utils.FileExists(filepath.Join(dir, name)) {
			v.Missing = append(v.Missing, name)
		}
	}
	return v
}

// Archived lists the releases kept in the archive, newest first.
func (m *Manager) Archived(ctx context.Context) ([]storage.ArchivedRelease, error) {
	if m.deps.Archive == nil {
		return nil, ErrArchiveDisabled
	}
	return m.deps.Archive.List(ctx, m.serverID)
}

// Restore replaces the executable with an archived release and records its
// version.
func (m *Manager) Restore(ctx context.Context, tag string) Outcome {
	start := time.Now()
	if m.deps.Archive == nil {
		return m.finish(ctx, history.OpRestore, tag, start, Outcome{Err: ErrArchiveDisabled})
	}
	prev := m.State()
	if prev.busy() {
		return m.finish(ctx, history.OpRestore, tag, start, Outcome{Err: ErrServerRunning})
	}

	m.setState(StateUpdating)
	if err := m.deps.Archive.Fetch(ctx, m.serverID, tag, m.layout.ExecutablePath()); err != nil {
		m.setState(prev)
		return m.finish(ctx, history.OpRestore, tag, start, Outcome{Err: fmt.Errorf("restore %s: %w", tag, err)})
	}
	if err := m.deps.Versions.WriteLocal(tag); err != nil {
		m.setState(m.diskState())
		return m.finish(ctx, history.OpRestore, tag, start, Outcome{Err: fmt.Errorf("restore %s: %w", tag, err)})
	}

	m.setState(m.diskState())
	m.logger.Info("Release restored", zap.String("version", tag))
	return m.finish(ctx, history.OpRestore, tag, start, Outcome{Notice: "restored " + tag})
}

// archive uploads the installed executable. Failures are only logged.
func (m *Manager) archive(ctx context.Context, tag string) {
	if m.deps.Archive == nil {
		return
	}
	if err := m.deps.Archive.Store(ctx, m.serverID, tag, m.layout.ExecutablePath()); err != nil {
		m.logger.Warn("Failed to archive release", zap.String("version", tag), zap.Error(err))
	}
}

// finish records metrics and history for an operation and returns o.
func (m *Manager) finish(ctx context.Context, op, version string, start time.Time, o Outcome) Outcome {
	m.deps.Metrics.ObserveOperation(op, time.Since(start), o.Err)

	event := history.Event{
		ServerID:  m.serverID,
		Operation: op,
		Version:   version,
		Success:   o.OK(),
		Message:   o.Message(),
	}
	if err := m.deps.History.Record(context.WithoutCancel(ctx), event); err != nil {
		m.logger.Warn("Failed to record history event", zap.String("operation", op), zap.Error(err))
	}
	return o
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, time.Duration, error) {}
func (noopMetrics) SetState(string)                              {}
func (noopMetrics) SetUpdateAvailable(bool)                      {}
