package ftp

import "fmt"

// handlePWD replies with the session's current directory, grounded on
// pwd_ftp.c's print_working_directory.
func handlePWD(ctx *HandlerContext, _ string) (Reply, error) {
	body := fmt.Sprintf("ok. %s", ResolvePath(ctx.RootDir, ctx.Session.CurrDir))
	if len(body) > ReplyMaxBody {
		return Reply{Code: ReplyActionIncompleteLocalErr, Body: []byte("path too long")}, nil
	}
	return Reply{Code: ReplyCmdOK, Body: []byte(body)}, nil
}
