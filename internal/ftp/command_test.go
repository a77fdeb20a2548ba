package ftp_test

import (
	"testing"

	"github.com/avihaiadler/goftpd/internal/ftp"
)

func TestParseCommandKnownVerbs(t *testing.T) {
	cases := []struct {
		line string
		verb ftp.Verb
		args string
	}{
		{"CWD /pub", ftp.VerbCWD, "/pub"},
		{"  pwd  stray", ftp.VerbPWD, "stray"},
		{"MKD newdir", ftp.VerbMKD, "newdir"},
		{"RMD olddir", ftp.VerbRMD, "olddir"},
		{"PORT 127,0,0,1,195,80", ftp.VerbPORT, "127,0,0,1,195,80"},
		{"PASV ignored", ftp.VerbPASV, "ignored"},
		{"DELE file.txt", ftp.VerbDELE, "file.txt"},
		{"LIST .", ftp.VerbLIST, "."},
		{"RETR file.txt", ftp.VerbRETR, "file.txt"},
		{"STOR file.txt", ftp.VerbSTOR, "file.txt"},
		{"QUIT now", ftp.VerbQUIT, "now"},
	}

	for _, tc := range cases {
		got := ftp.ParseCommand([]byte(tc.line))
		if got.Verb != tc.verb || got.Args != tc.args {
			t.Errorf("ParseCommand(%q) = %+v, want verb=%v args=%q", tc.line, got, tc.verb, tc.args)
		}
	}
}

func TestParseCommandUnknown(t *testing.T) {
	cases := []string{
		"",
		"noSpaceHere",
		"ab missing",
		"toolongcmd args",
		"xyz args",
	}

	for _, line := range cases {
		got := ftp.ParseCommand([]byte(line))
		if got.Verb != ftp.VerbUnknown {
			t.Errorf("ParseCommand(%q).Verb = %v, want VerbUnknown", line, got.Verb)
		}
	}
}

func TestVerbNeedsDataConnection(t *testing.T) {
	for _, v := range []ftp.Verb{ftp.VerbLIST, ftp.VerbRETR, ftp.VerbSTOR} {
		if !v.NeedsDataConnection() {
			t.Errorf("%v.NeedsDataConnection() = false, want true", v)
		}
	}
	for _, v := range []ftp.Verb{ftp.VerbPWD, ftp.VerbCWD, ftp.VerbQUIT, ftp.VerbUnknown} {
		if v.NeedsDataConnection() {
			t.Errorf("%v.NeedsDataConnection() = true, want false", v)
		}
	}
}

func TestVerbString(t *testing.T) {
	if got := ftp.VerbLIST.String(); got != "LIST" {
		t.Errorf("VerbLIST.String() = %q, want LIST", got)
	}
	if got := ftp.VerbUnknown.String(); got != "UNKNOWN" {
		t.Errorf("VerbUnknown.String() = %q, want UNKNOWN", got)
	}
}
