//go:build unix

package ioctl

import (
	"os"

	"golang.org/x/sys/unix"
)

// Call does a plain ioctl system call.
func Call(fd, command, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, command, arg)
	if errno != 0 {
		return &os.SyscallError{
			Syscall: Command(command).String(),
			Err:     errno,
		}
	}
	return nil
}
