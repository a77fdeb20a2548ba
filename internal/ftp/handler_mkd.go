package ftp

import (
	"fmt"
	"os"
)

// handleMKD creates a directory relative to the session's current
// directory, grounded on mkd_ftp.c's make_directory.
func handleMKD(ctx *HandlerContext, args string) (Reply, error) {
	if err := ValidatePath(args); err != nil {
		return Reply{Code: ReplyArgsSyntaxErr, Body: []byte("invalid arguments")}, nil
	}

	curr := ctx.Session.CurrDir
	if curr == "" {
		curr = "."
	}
	path := ResolvePath(ResolvePath(ctx.RootDir, curr), args)

	if err := os.Mkdir(path, 0o700); err != nil {
		return Reply{
			Code: ReplyActionIncompleteLocalErr,
			Body: []byte(fmt.Sprintf("action incomplete. internal process error (%v)", err)),
		}, nil
	}

	return Reply{Code: ReplyCmdOK, Body: []byte(fmt.Sprintf("ok. %s/%s", curr, args))}, nil
}
