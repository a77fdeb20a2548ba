package ftp_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/avihaiadler/goftpd/internal/ftp"
)

func TestReplyRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := ftp.Reply{Code: 220, Body: []byte("service ready")}

	if err := ftp.SendReply(&buf, want); err != nil {
		t.Fatalf("SendReply: %v", err)
	}

	got, err := ftp.RecvReply(&buf)
	if err != nil {
		t.Fatalf("RecvReply: %v", err)
	}
	if got.Code != want.Code || !bytes.Equal(got.Body, want.Body) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestReplyRejectsOversizedBody(t *testing.T) {
	var buf bytes.Buffer
	oversized := ftp.Reply{Code: 550, Body: make([]byte, ftp.ReplyMaxBody+1)}

	err := ftp.SendReply(&buf, oversized)
	if !errors.Is(err, ftp.ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := ftp.Request{Body: []byte("USER anonymous")}

	if err := ftp.SendRequest(&buf, want); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	got, err := ftp.RecvRequest(&buf)
	if err != nil {
		t.Fatalf("RecvRequest: %v", err)
	}
	if !bytes.Equal(got.Body, want.Body) {
		t.Fatalf("round trip mismatch: got %q, want %q", got.Body, want.Body)
	}
}

func TestRequestRejectsOversizedBody(t *testing.T) {
	var buf bytes.Buffer
	oversized := ftp.Request{Body: make([]byte, ftp.RequestMaxBody+1)}

	err := ftp.SendRequest(&buf, oversized)
	if !errors.Is(err, ftp.ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestDataBlockRoundTrip(t *testing.T) {
	cases := []ftp.DataBlock{
		{EOF: false, Payload: []byte("hello, world")},
		{EOF: true, Payload: nil},
		{EOF: true, Payload: []byte("final chunk")},
	}

	for _, want := range cases {
		var buf bytes.Buffer
		if err := ftp.SendDataBlock(&buf, want); err != nil {
			t.Fatalf("SendDataBlock: %v", err)
		}

		got, err := ftp.RecvDataBlock(&buf)
		if err != nil {
			t.Fatalf("RecvDataBlock: %v", err)
		}
		if got.EOF != want.EOF || !bytes.Equal(got.Payload, want.Payload) {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestDataBlockRejectsOversizedPayload(t *testing.T) {
	var buf bytes.Buffer
	oversized := ftp.DataBlock{Payload: make([]byte, ftp.DataBlockMaxBody+1)}

	err := ftp.SendDataBlock(&buf, oversized)
	if !errors.Is(err, ftp.ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestRecvRejectsTruncatedStream(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00})

	_, err := ftp.RecvReply(buf)
	if !errors.Is(err, ftp.ErrTransmissionFailure) {
		t.Fatalf("expected ErrTransmissionFailure, got %v", err)
	}
}

func TestRecvNilReaderRejected(t *testing.T) {
	if _, err := ftp.RecvReply(nil); !errors.Is(err, ftp.ErrInvalidArgs) {
		t.Fatalf("expected ErrInvalidArgs, got %v", err)
	}
	if err := ftp.SendReply(nil, ftp.Reply{}); !errors.Is(err, ftp.ErrInvalidArgs) {
		t.Fatalf("expected ErrInvalidArgs, got %v", err)
	}
}
