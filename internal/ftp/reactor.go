package ftp

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/avihaiadler/goftpd/internal/ftpmetrics"
)

// Reactor accepts control connections and dispatches each client's
// commands onto the shared WorkerPool, mirroring the original epoll-plus-
// eventfd loop in ftpd.c. Go's network runtime already parks blocked
// reads and writes on its own internal poller, so there is no separate
// syscall-level readiness loop to hand-roll here: one goroutine per
// control connection, parked in a blocking read, is the idiomatic Go
// rendition of "wait for readiness, then dispatch" (see DESIGN.md).
type Reactor struct {
	Listener net.Listener
	Registry *SessionRegistry
	Pool     *WorkerPool
	RootDir  string
	Logger   *slog.Logger

	// Metrics is optional; when nil, instrumentation is skipped.
	Metrics *ftpmetrics.Collector
}

// Run accepts connections until ctx is cancelled or the listener errs.
func (r *Reactor) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = r.Listener.Close()
	}()

	for {
		conn, err := r.Listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		id := r.Registry.Register(conn)
		if r.Metrics != nil {
			r.Metrics.RegisterSession()
		}
		go r.sessionLoop(ctx, id, conn)
	}
}

// sessionLoop owns one control connection end to end: it greets the
// client, then repeatedly reads a Request, hands the parsed Command to
// the WorkerPool, and writes back the Reply the handler produced. Each
// command waits for the previous one's Task to finish before the next
// read, preserving per-connection command ordering while still routing
// execution through the shared pool.
func (r *Reactor) sessionLoop(ctx context.Context, id uint64, conn net.Conn) {
	defer func() {
		if s, err := r.Registry.Remove(id); err == nil {
			closeDataChannel(&s)
		}
		_ = conn.Close()
		if r.Metrics != nil {
			r.Metrics.UnregisterSession()
		}
	}()

	if err := SendReply(conn, Greet()); err != nil {
		r.Logger.Error("failed to send greeting", slog.Uint64("session", id), slog.Any("error", err))
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}

		req, err := RecvRequest(conn)
		if err != nil {
			if !errors.Is(err, ErrTransmissionFailure) {
				r.Logger.Error("failed to receive request", slog.Uint64("session", id), slog.Any("error", err))
			}
			return
		}

		cmd := ParseCommand(req.Body)

		done := make(chan struct{})
		var reply Reply
		var bytesTransferred int64
		var dispatchErr error

		start := time.Now()
		r.Pool.Submit(Task{
			SessionID: id,
			Run: func() {
				defer close(done)
				reply, bytesTransferred, dispatchErr = r.runCommand(id, cmd)
			},
		})
		<-done

		if r.Metrics != nil {
			r.Metrics.IncCommand(cmd.Verb.String())
			if cmd.Verb.NeedsDataConnection() {
				r.Metrics.ObserveTransferDuration(cmd.Verb.String(), time.Since(start).Seconds())
				if bytesTransferred > 0 {
					r.Metrics.AddBytesTransferred(strings.ToLower(cmd.Verb.String()), float64(bytesTransferred))
				}
			}
		}

		if dispatchErr != nil {
			r.Logger.Error("command dispatch failed", slog.Uint64("session", id), slog.Any("error", dispatchErr))
			return
		}

		if err := SendReply(conn, reply); err != nil {
			r.Logger.Error("failed to send reply", slog.Uint64("session", id), slog.Any("error", err))
			return
		}

		if cmd.Verb == VerbQUIT {
			return
		}
	}
}

// runCommand looks up the session, runs its Handler, and persists any
// mutation the handler made before returning the Reply. The second
// return value reports bytes moved over the data connection, if any.
func (r *Reactor) runCommand(id uint64, cmd Command) (Reply, int64, error) {
	session, err := r.Registry.Lookup(id)
	if err != nil {
		return Reply{Code: ReplyActionIncompleteLocalErr, Body: []byte("action incomplete. internal process error")}, 0, nil
	}

	ctx := &HandlerContext{Session: session, RootDir: r.RootDir, Logger: r.Logger}

	reply, err := Dispatch(ctx, cmd)
	if err != nil {
		return Reply{}, 0, err
	}

	if err := r.Registry.Replace(ctx.Session); err != nil {
		r.Logger.Warn("session vanished mid-command", slog.Uint64("session", id))
	}

	return reply, ctx.BytesTransferred, nil
}
