//go:build unix

package privilege

import "golang.org/x/sys/unix"

// canExecute checks execute permission with the caller's real UID/GID.
func canExecute(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
