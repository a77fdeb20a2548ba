package ftp

import (
	"fmt"
	"os"
)

// handleRMD removes an empty directory relative to the session's current
// directory, grounded on rmd_ftp.c's remove_directory.
func handleRMD(ctx *HandlerContext, args string) (Reply, error) {
	if err := ValidatePath(args); err != nil {
		return Reply{Code: ReplyArgsSyntaxErr, Body: []byte("invalid arguments")}, nil
	}

	path := ResolvePath(ResolvePath(ctx.RootDir, ctx.Session.CurrDir), args)

	if err := os.Remove(path); err != nil {
		return Reply{
			Code: ReplyActionIncompleteLocalErr,
			Body: []byte(fmt.Sprintf("action incomplete. internal process error (%v)", err)),
		}, nil
	}

	return Reply{Code: ReplyCmdOK, Body: []byte(fmt.Sprintf("ok. %s/%s", ctx.Session.CurrDir, args))}, nil
}
