package ftp

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ErrCannotOpenDataConn indicates an ACTIVE or PASSIVE negotiation failed
// to produce a usable socket.
var ErrCannotOpenDataConn = errors.New("ftp: cannot open data connection")

// ErrInvalidPortArgs indicates a PORT command's argument failed to parse
// as "ip,port".
var ErrInvalidPortArgs = errors.New("ftp: invalid PORT arguments")

// OpenPassive opens a listening socket on an ephemeral port bound to one
// of the server's local addresses, closing out whatever data channel the
// session previously held. It mirrors the original handler's behavior of
// trying each local address until one yields a listener (§4.3), but on a
// single host there is normally exactly one candidate.
func OpenPassive(s *Session) (net.Addr, error) {
	closeDataChannel(s)

	addrs, err := localPassiveAddrs()
	if err != nil || len(addrs) == 0 {
		return nil, fmt.Errorf("%w: no local address available", ErrCannotOpenDataConn)
	}

	var lastErr error
	for _, addr := range addrs {
		ln, err := listenReuseAddr(net.JoinHostPort(addr, "0"))
		if err != nil {
			lastErr = err
			continue
		}
		s.Listener = ln
		s.DataSockType = DataSockPassive
		return ln.Addr(), nil
	}

	return nil, fmt.Errorf("%w: %v", ErrCannotOpenDataConn, lastErr)
}

// OpenActive dials out to the client-supplied "ip,port" address, closing
// out whatever data channel the session previously held. The outgoing
// socket is not bound to a configured local port; the OS picks its
// source port.
func OpenActive(s *Session, args string) error {
	host, port, err := parsePortArgs(args)
	if err != nil {
		return err
	}

	closeDataChannel(s)

	conn, err := net.Dial("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCannotOpenDataConn, err)
	}

	s.Data = conn
	s.DataSockType = DataSockActive
	return nil
}

// AcceptPassive blocks for one inbound connection on the session's
// passive listener and installs it as the session's data connection.
// The listener is closed either way, matching the original protocol's
// one-shot PASV sockets.
func AcceptPassive(s *Session) error {
	if s.Listener == nil {
		return ErrDataConnClosed
	}
	defer func() {
		_ = s.Listener.Close()
		s.Listener = nil
	}()

	conn, err := s.Listener.Accept()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCannotOpenDataConn, err)
	}

	s.Data = conn
	return nil
}

// closeDataChannel tears down whatever data connection or passive
// listener a session currently holds, per the handler logic in passive.c
// and port.c: the old socket is always closed before a new one replaces
// it.
func closeDataChannel(s *Session) {
	if s.Listener != nil {
		_ = s.Listener.Close()
		s.Listener = nil
	}
	if s.Data != nil {
		_ = s.Data.Close()
		s.Data = nil
	}
	s.DataSockType = DataSockNone
}

// parsePortArgs splits a PORT command argument of the form "ip,port"
// into host and port strings.
func parsePortArgs(args string) (host, port string, err error) {
	idx := strings.IndexByte(args, ',')
	if idx < 0 {
		return "", "", ErrInvalidPortArgs
	}

	host = strings.TrimSpace(args[:idx])
	portStr := strings.TrimSpace(args[idx+1:])

	if host == "" || portStr == "" {
		return "", "", ErrInvalidPortArgs
	}
	if _, err := strconv.Atoi(portStr); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidPortArgs, err)
	}

	return host, portStr, nil
}

// localPassiveAddrs enumerates the server's own non-loopback IP addresses,
// candidates for binding a PASV listener, using stdlib interface
// enumeration (see DESIGN.md for why no interface monitor is reused).
func localPassiveAddrs() ([]string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		out = append(out, ipNet.IP.String())
	}
	return out, nil
}
