package ftp

import (
	"fmt"
	"net"
)

// handlePASV opens a passive listener and reports its address as
// "ip,port", the same format PORT accepts, grounded on passive.c's
// passive. Nothing watches the new listener after this handler returns:
// the pending connection is accepted by ensureDataConn when the next
// transfer command runs (see DESIGN.md).
func handlePASV(ctx *HandlerContext, _ string) (Reply, error) {
	addr, err := OpenPassive(&ctx.Session)
	if err != nil {
		return Reply{Code: ReplyCannotOpenDataConn, Body: []byte("cannot open passive data connection")}, nil
	}

	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return Reply{Code: ReplyCannotOpenDataConn, Body: []byte("cannot open passive data connection")}, nil
	}

	return Reply{Code: ReplyPassive, Body: []byte(fmt.Sprintf("ok. %s,%s", host, port))}, nil
}
