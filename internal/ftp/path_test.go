package ftp_test

import (
	"errors"
	"testing"

	"github.com/avihaiadler/goftpd/internal/ftp"
)

func TestValidatePathAccepts(t *testing.T) {
	for _, p := range []string{"pub", "downloads", "a b"} {
		if err := ftp.ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) = %v, want nil", p, err)
		}
	}
}

func TestValidatePathRejects(t *testing.T) {
	for _, p := range []string{"", "   ", ".", "..", "../etc", "/etc", "a.b", "sub/../x"} {
		if err := ftp.ValidatePath(p); !errors.Is(err, ftp.ErrPathRejected) {
			t.Errorf("ValidatePath(%q) = %v, want ErrPathRejected", p, err)
		}
	}
}

func TestResolvePath(t *testing.T) {
	if got := ftp.ResolvePath("/srv/ftp", ""); got != "/srv/ftp" {
		t.Errorf("ResolvePath empty curr = %q, want /srv/ftp", got)
	}
	if got := ftp.ResolvePath("/srv/ftp", "pub"); got != "/srv/ftp/pub" {
		t.Errorf("ResolvePath = %q, want /srv/ftp/pub", got)
	}
}
