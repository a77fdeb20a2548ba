package ftp_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avihaiadler/goftpd/internal/ftp"
)

func newCtx(t *testing.T) *ftp.HandlerContext {
	t.Helper()
	root := t.TempDir()
	return &ftp.HandlerContext{RootDir: root}
}

func TestHandlePWD(t *testing.T) {
	ctx := newCtx(t)
	reply, err := ftp.Dispatch(ctx, ftp.Command{Verb: ftp.VerbPWD})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply.Code != ftp.ReplyCmdOK {
		t.Fatalf("code = %d, want %d", reply.Code, ftp.ReplyCmdOK)
	}
}

func TestHandleMKDThenCWDThenRMD(t *testing.T) {
	ctx := newCtx(t)

	reply, err := ftp.Dispatch(ctx, ftp.Command{Verb: ftp.VerbMKD, Args: "pub"})
	if err != nil || reply.Code != ftp.ReplyCmdOK {
		t.Fatalf("MKD reply=%+v err=%v", reply, err)
	}
	if _, err := os.Stat(filepath.Join(ctx.RootDir, "pub")); err != nil {
		t.Fatalf("directory not created: %v", err)
	}

	reply, err = ftp.Dispatch(ctx, ftp.Command{Verb: ftp.VerbCWD, Args: "pub"})
	if err != nil || reply.Code != ftp.ReplyCmdOK {
		t.Fatalf("CWD reply=%+v err=%v", reply, err)
	}
	if ctx.Session.CurrDir != "pub" {
		t.Fatalf("CurrDir = %q, want pub", ctx.Session.CurrDir)
	}

	ctx.Session.CurrDir = ""
	reply, err = ftp.Dispatch(ctx, ftp.Command{Verb: ftp.VerbRMD, Args: "pub"})
	if err != nil || reply.Code != ftp.ReplyCmdOK {
		t.Fatalf("RMD reply=%+v err=%v", reply, err)
	}
	if _, err := os.Stat(filepath.Join(ctx.RootDir, "pub")); !os.IsNotExist(err) {
		t.Fatalf("directory still exists after RMD")
	}
}

func TestHandleCWDRejectsTraversal(t *testing.T) {
	ctx := newCtx(t)
	reply, err := ftp.Dispatch(ctx, ftp.Command{Verb: ftp.VerbCWD, Args: "../etc"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply.Code != ftp.ReplyArgsSyntaxErr {
		t.Fatalf("code = %d, want %d", reply.Code, ftp.ReplyArgsSyntaxErr)
	}
	if ctx.Session.CurrDir != "" {
		t.Fatalf("CurrDir changed despite rejection: %q", ctx.Session.CurrDir)
	}
}

func TestHandleDELE(t *testing.T) {
	ctx := newCtx(t)
	target := filepath.Join(ctx.RootDir, "file_txt")
	if err := os.WriteFile(target, []byte("data"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reply, err := ftp.Dispatch(ctx, ftp.Command{Verb: ftp.VerbDELE, Args: "file_txt"})
	if err != nil || reply.Code != ftp.ReplyFileActionComplete {
		t.Fatalf("DELE reply=%+v err=%v", reply, err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("file still exists after DELE")
	}
}

func TestHandleQUIT(t *testing.T) {
	ctx := newCtx(t)
	ctx.Session.LoggedIn = true

	reply, err := ftp.Dispatch(ctx, ftp.Command{Verb: ftp.VerbQUIT})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply.Code != ftp.ReplyClosingCtrlConn {
		t.Fatalf("code = %d, want %d", reply.Code, ftp.ReplyClosingCtrlConn)
	}
	if ctx.Session.LoggedIn {
		t.Fatal("LoggedIn still true after QUIT")
	}
}

func TestHandleUnknownVerb(t *testing.T) {
	ctx := newCtx(t)
	reply, err := ftp.Dispatch(ctx, ftp.Command{Verb: ftp.VerbUnknown})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply.Code != ftp.ReplyCmdSyntaxErr {
		t.Fatalf("code = %d, want %d", reply.Code, ftp.ReplyCmdSyntaxErr)
	}
}

func TestHandleRETRWithoutDataConnection(t *testing.T) {
	ctx := newCtx(t)
	reply, err := ftp.Dispatch(ctx, ftp.Command{Verb: ftp.VerbRETR, Args: "missing.txt"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reply.Code != ftp.ReplyDataConnClosed {
		t.Fatalf("code = %d, want %d", reply.Code, ftp.ReplyDataConnClosed)
	}
}
