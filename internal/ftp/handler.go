package ftp

import (
	"log/slog"
	"os"
)

// HandlerContext is the per-invocation state a command handler operates
// on: a mutable copy of the session plus the shared server configuration.
// Handlers mutate Session's fields directly; the caller is responsible
// for persisting the result back into the SessionRegistry.
type HandlerContext struct {
	Session Session
	RootDir string
	Logger  *slog.Logger

	// BytesTransferred is set by RETR/STOR/LIST handlers to the number of
	// payload bytes moved over the data connection, for the caller to
	// report to the metrics Collector after dispatch.
	BytesTransferred int64
}

// Handler executes one parsed command and returns the Reply to send on
// the control connection. A non-nil error indicates the handler could
// not produce any reply at all (a framing/transport failure); handler-
// level failures such as "file not found" are reported through the
// returned Reply's code, not through error.
type Handler func(ctx *HandlerContext, args string) (Reply, error)

// handlers maps each known Verb to its implementation. VerbUnknown has
// no entry; the dispatcher replies 500 directly.
var handlers = map[Verb]Handler{
	VerbPWD:  handlePWD,
	VerbCWD:  handleCWD,
	VerbMKD:  handleMKD,
	VerbRMD:  handleRMD,
	VerbDELE: handleDELE,
	VerbPORT: handlePORT,
	VerbPASV: handlePASV,
	VerbLIST: handleLIST,
	VerbRETR: handleRETR,
	VerbSTOR: handleSTOR,
	VerbQUIT: handleQUIT,
}

// Dispatch resolves a Verb to its Handler, or reports VerbUnknown via a
// synthesized 500 reply.
func Dispatch(ctx *HandlerContext, cmd Command) (Reply, error) {
	if cmd.Verb == VerbUnknown {
		return Reply{Code: ReplyCmdSyntaxErr, Body: []byte("invalid request")}, nil
	}

	h, ok := handlers[cmd.Verb]
	if !ok {
		return Reply{Code: ReplyCmdSyntaxErr, Body: []byte("invalid request")}, nil
	}

	return h(ctx, cmd.Args)
}

// ensureDataConn makes sure ctx.Session.Data is ready to use before a
// transfer handler proceeds. If a PASV listener is open but no peer has
// connected yet, it blocks accepting one connection, matching the
// original Reactor's behavior of promoting listen_fd to data_fd on the
// first readiness event. Returns false (with the session's Data left
// nil) when no data channel has been negotiated at all.
func ensureDataConn(ctx *HandlerContext) bool {
	if ctx.Session.Data != nil {
		return true
	}
	if ctx.Session.Listener == nil {
		return false
	}
	if err := AcceptPassive(&ctx.Session); err != nil {
		return false
	}
	return true
}

// errnoReply translates a filesystem error into a Reply carrying the
// error text: an os.IsNotExist error gets notFoundCode, any other error
// gets otherCode. Each caller chooses the two codes.
func errnoReply(err error, notFoundCode uint16, otherCode uint16) Reply {
	if os.IsNotExist(err) {
		return Reply{Code: notFoundCode, Body: []byte(err.Error())}
	}
	return Reply{Code: otherCode, Body: []byte(err.Error())}
}
