//go:build !linux

package ftp

import "net"

// listenReuseAddr opens a passive listener without SO_REUSEADDR; the
// option is Linux-specific (see datachan_linux.go) and has no portable
// stdlib equivalent.
func listenReuseAddr(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}
