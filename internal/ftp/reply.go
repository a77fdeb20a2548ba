package ftp

// Reply codes used by this implementation (§6). This is a small, closed
// subset of the classical FTP reply space; compliance with the rest of
// the RFC's codes is an explicit non-goal.
const (
	ReplyDataConnOpen                 uint16 = 125
	ReplyFileOKOpenDataConn           uint16 = 150
	ReplyCmdOK                        uint16 = 200
	ReplyClosingCtrlConn              uint16 = 221
	ReplyDataConnOpenStartingTransfer uint16 = 225
	ReplyPassive                      uint16 = 227
	ReplyFileActionComplete           uint16 = 250
	ReplyCannotOpenDataConn           uint16 = 425
	ReplyDataConnClosed               uint16 = 426
	ReplyFileUnavailable              uint16 = 450
	ReplyActionIncompleteLocalErr     uint16 = 451
	ReplyCmdSyntaxErr                 uint16 = 500
	ReplyArgsSyntaxErr                uint16 = 501
	ReplyFileNotFound                 uint16 = 550
)
