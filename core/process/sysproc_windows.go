//go:build windows

package process

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// sysProcAttr starts the server without a visible console window and in its
// own process group, so it neither steals focus nor receives the manager's
// Ctrl+C.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
	}
}
