package ftp

import (
	"fmt"
	"os"
)

// handleCWD validates and moves the session's current directory,
// grounded on cwd_ftp.c's change_directory.
func handleCWD(ctx *HandlerContext, args string) (Reply, error) {
	if err := ValidatePath(args); err != nil {
		return Reply{Code: ReplyArgsSyntaxErr, Body: []byte("invalid arguments")}, nil
	}

	candidate := ResolvePath(ctx.RootDir, args)
	info, err := os.Stat(candidate)
	if err != nil || !info.IsDir() {
		return Reply{Code: ReplyArgsSyntaxErr, Body: []byte("invalid path")}, nil
	}

	ctx.Session.CurrDir = args

	return Reply{Code: ReplyCmdOK, Body: []byte(fmt.Sprintf("ok. %s", args))}, nil
}
