//go:build !windows

package process

import "syscall"

// sysProcAttr puts the server in its own process group so terminal signals
// sent to the manager are not delivered to it.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
