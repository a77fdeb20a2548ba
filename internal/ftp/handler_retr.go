package ftp

import (
	"bufio"
	"os"
)

// handleRETR streams a file to the session's open data connection as a
// sequence of DataBlocks, grounded on retrieve.c's retrieve_file.
func handleRETR(ctx *HandlerContext, args string) (Reply, error) {
	if !ensureDataConn(ctx) {
		return Reply{Code: ReplyDataConnClosed, Body: []byte("data connection closed")}, nil
	}
	if err := ValidatePath(args); err != nil {
		return Reply{Code: ReplyArgsSyntaxErr, Body: []byte("invalid path")}, nil
	}

	path := ResolvePath(ResolvePath(ctx.RootDir, ctx.Session.CurrDir), args)

	f, err := os.Open(path)
	if err != nil {
		return errnoReply(err, ReplyFileNotFound, ReplyFileNotFound), nil
	}
	defer f.Close()

	n, err := streamReader(ctx.Session.Data, bufio.NewReaderSize(f, DataBlockMaxBody))
	ctx.BytesTransferred = n
	closeDataChannel(&ctx.Session)
	if err != nil {
		if n == 0 {
			return Reply{Code: ReplyDataConnClosed, Body: []byte("data connection closed")}, nil
		}
		return Reply{Code: ReplyFileUnavailable, Body: []byte("i/o error during transfer")}, nil
	}

	return Reply{Code: ReplyFileActionComplete, Body: []byte("transfer complete")}, nil
}
