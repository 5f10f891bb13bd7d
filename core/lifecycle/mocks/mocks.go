package mocks

import (
	"context"

	"beammp-manager/core/history"
	"beammp-manager/core/process"
	"beammp-manager/core/release"
	"beammp-manager/core/serverconfig"
	"beammp-manager/core/storage"

	"github.com/stretchr/testify/mock"
)

// Releases is a mock implementation of lifecycle.Releases
type Releases struct {
	mock.Mock
}

func (m *Releases) ResolveLatest(ctx context.Context) (release.Release, error) {
	args := m.Called(ctx)
	return args.Get(0).(release.Release), args.Error(1)
}

func (m *Releases) Download(ctx context.Context, url, dest string) error {
	args := m.Called(ctx, url, dest)
	return args.Error(0)
}

// Versions is a mock implementation of lifecycle.Versions
type Versions struct {
	mock.Mock
}

func (m *Versions) ReadLocal() (string, bool) {
	args := m.Called()
	return args.String(0), args.Bool(1)
}

func (m *Versions) WriteLocal(version string) error {
	args := m.Called(version)
	return args.Error(0)
}

// Configs is a mock implementation of lifecycle.Configs
type Configs struct {
	mock.Mock
}

func (m *Configs) Exists() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *Configs) Load() (serverconfig.Document, error) {
	args := m.Called()
	return args.Get(0).(serverconfig.Document), args.Error(1)
}

func (m *Configs) Save(doc serverconfig.Document) error {
	args := m.Called(doc)
	return args.Error(0)
}

// Processes is a mock implementation of lifecycle.Processes
type Processes struct {
	mock.Mock
}

func (m *Processes) Launch(executable, workdir string, env []string) (*process.Instance, error) {
	args := m.Called(executable, workdir, env)
	if inst, ok := args.Get(0).(*process.Instance); ok {
		return inst, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Processes) RequestShutdown(inst *process.Instance) {
	m.Called(inst)
}

// Archive is a mock implementation of lifecycle.Archive
type Archive struct {
	mock.Mock
}

func (m *Archive) Store(ctx context.Context, serverID, tag, localPath string) error {
	args := m.Called(ctx, serverID, tag, localPath)
	return args.Error(0)
}

func (m *Archive) List(ctx context.Context, serverID string) ([]storage.ArchivedRelease, error) {
	args := m.Called(ctx, serverID)
	if list, ok := args.Get(0).([]storage.ArchivedRelease); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Archive) Fetch(ctx context.Context, serverID, tag, dest string) error {
	args := m.Called(ctx, serverID, tag, dest)
	return args.Error(0)
}

// History is a mock implementation of lifecycle.History
type History struct {
	mock.Mock
}

func (m *History) Record(ctx context.Context, e history.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
