package ftp

import (
	"bufio"
	"os/exec"
)

// handleLIST spawns `ls -lh <path>` and streams its stdout to the
// session's open data connection as DataBlocks, grounded on list.c's
// send_dir_content. The original pipes a forked child's stdout through a
// non-blocking pipe polled for EAGAIN/EWOULDBLOCK to detect EOF; a
// blocking read of exec.Cmd's StdoutPipe gives the same "read until the
// child closes its write end" signal without the manual poll loop.
func handleLIST(ctx *HandlerContext, args string) (Reply, error) {
	if !ensureDataConn(ctx) {
		return Reply{Code: ReplyDataConnClosed, Body: []byte("data connection closed")}, nil
	}

	dirArg := args
	if dirArg == "" {
		dirArg = "."
	} else if err := ValidatePath(dirArg); err != nil {
		return Reply{Code: ReplyArgsSyntaxErr, Body: []byte("invalid path")}, nil
	}

	dirPath := ResolvePath(ResolvePath(ctx.RootDir, ctx.Session.CurrDir), dirArg)

	cmd := exec.Command("ls", "-lh", dirPath)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Reply{Code: ReplyFileUnavailable, Body: []byte("action incomplete")}, nil
	}

	if err := cmd.Start(); err != nil {
		return errnoReply(err, ReplyFileNotFound, ReplyFileUnavailable), nil
	}

	n, streamErr := streamReader(ctx.Session.Data, bufio.NewReaderSize(stdout, DataBlockMaxBody))
	ctx.BytesTransferred = n
	closeDataChannel(&ctx.Session)
	waitErr := cmd.Wait()

	if streamErr != nil && n == 0 {
		return Reply{Code: ReplyDataConnClosed, Body: []byte("data connection closed")}, nil
	}
	if streamErr != nil || waitErr != nil {
		return Reply{Code: ReplyFileUnavailable, Body: []byte("listing failed")}, nil
	}

	return Reply{Code: ReplyFileActionComplete, Body: []byte("directory send OK")}, nil
}
