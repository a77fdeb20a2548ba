package ftp

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// handleSTOR receives a stream of DataBlocks from the session's open data
// connection into a hidden temp file, then renames it into place on a
// clean EOF, grounded on store.c's store_file. The original's temp-file
// name embeds the OS thread identity; this implementation embeds the
// session's ControlID instead, since Go has no stable per-goroutine
// thread handle to borrow.
func handleSTOR(ctx *HandlerContext, args string) (Reply, error) {
	if !ensureDataConn(ctx) {
		return Reply{Code: ReplyDataConnClosed, Body: []byte("data connection closed")}, nil
	}
	if err := ValidatePath(args); err != nil {
		return Reply{Code: ReplyArgsSyntaxErr, Body: []byte("invalid path")}, nil
	}

	fileName := path.Base(args)
	dir := ResolvePath(ctx.RootDir, ctx.Session.CurrDir)
	finalPath := ResolvePath(dir, args)
	tmpPath := ResolvePath(dir, fmt.Sprintf(".%d%s", ctx.Session.ControlID, fileName))

	n, err := receiveToTemp(ctx.Session.Data, tmpPath)
	ctx.BytesTransferred = n
	closeDataChannel(&ctx.Session)
	if err != nil {
		_ = os.Remove(tmpPath)
		if n == 0 {
			return Reply{Code: ReplyDataConnClosed, Body: []byte("data connection closed")}, nil
		}
		return Reply{Code: ReplyActionIncompleteLocalErr, Body: []byte("action incomplete. internal error")}, nil
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return Reply{Code: ReplyFileUnavailable, Body: []byte("action incomplete. internal error")}, nil
	}

	return Reply{Code: ReplyFileActionComplete, Body: []byte(fmt.Sprintf("ok. %s stored", strings.TrimSpace(args)))}, nil
}

// receiveToTemp reads DataBlocks from r, writing each block's payload to
// a freshly created file at tmpPath, until a block with the EOF bit set.
// Returns the number of payload bytes written.
func receiveToTemp(r io.Reader, tmpPath string) (int64, error) {
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var total int64

	for {
		block, err := RecvDataBlock(r)
		if err != nil {
			return total, err
		}
		if len(block.Payload) > 0 {
			if _, err := f.Write(block.Payload); err != nil {
				return total, err
			}
			total += int64(len(block.Payload))
		}
		if block.EOF {
			return total, nil
		}
	}
}
