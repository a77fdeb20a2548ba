//go:build linux

package ftp

import (
	"context"
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// listenReuseAddr opens a passive listener with SO_REUSEADDR set before
// bind(), matching get_passive_socket's setsockopt call in util.c: a PASV
// socket that outlives a prior one on the same ephemeral port should not
// fail to bind while the old socket drains through TIME_WAIT.
func listenReuseAddr(addr string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			if err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			}); err != nil {
				return fmt.Errorf("raw conn control: %w", err)
			}
			return sockErr
		},
	}

	return lc.Listen(context.Background(), "tcp", addr)
}
