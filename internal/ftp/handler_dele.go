package ftp

import (
	"fmt"
	"os"
)

// handleDELE unlinks a regular file relative to the session's current
// directory, grounded on delete.c's delete_file.
func handleDELE(ctx *HandlerContext, args string) (Reply, error) {
	if err := ValidatePath(args); err != nil {
		return Reply{Code: ReplyArgsSyntaxErr, Body: []byte("invalid arguments")}, nil
	}

	path := ResolvePath(ResolvePath(ctx.RootDir, ctx.Session.CurrDir), args)

	if err := os.Remove(path); err != nil {
		return errnoReply(err, ReplyFileUnavailable, ReplyFileUnavailable), nil
	}

	return Reply{
		Code: ReplyFileActionComplete,
		Body: []byte(fmt.Sprintf("file action complete. %s has been deleted", args)),
	}, nil
}
