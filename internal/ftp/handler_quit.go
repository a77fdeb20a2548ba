package ftp

// handleQUIT replies 221; the caller closes the control connection after
// writing the reply (the session loop checks for VerbQUIT explicitly,
// since the 221 reply must reach the client before teardown), grounded
// on quit.c's quit.
func handleQUIT(ctx *HandlerContext, _ string) (Reply, error) {
	ctx.Session.LoggedIn = false
	return Reply{Code: ReplyClosingCtrlConn, Body: []byte("closing control connection")}, nil
}
