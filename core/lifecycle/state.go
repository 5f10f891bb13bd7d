package lifecycle

// State is the lifecycle state of an installation.
type State string

const (
	StateAbsent     State = "absent"
	StateInstalling State = "installing"
	StateInstalled  State = "installed"
	StateStarting   State = "starting"
	StateRunning    State = "running"
	StateStopping   State = "stopping"
	StateUpdating   State = "updating"
)

// busy reports whether the server process is live or being started.
func (s State) busy() bool {
	switch s {
	case StateStarting, StateRunning, StateStopping:
		return true
	}
	return false
}
