package ftp_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/avihaiadler/goftpd/internal/ftp"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	pool := ftp.NewWorkerPool(4)

	const n = 50
	var count atomic.Int64
	done := make(chan struct{}, n)

	for i := 0; i < n; i++ {
		pool.Submit(ftp.Task{Run: func() {
			count.Add(1)
			done <- struct{}{}
		}})
	}

	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for tasks to run")
		}
	}

	if got := count.Load(); got != n {
		t.Fatalf("ran %d tasks, want %d", got, n)
	}

	pool.Close()
}

func TestWorkerPoolCloseDrainsQueue(t *testing.T) {
	pool := ftp.NewWorkerPool(2)

	var ran atomic.Bool
	pool.Submit(ftp.Task{Run: func() { ran.Store(true) }})
	pool.Close()

	if !ran.Load() {
		t.Fatal("Close returned before queued task ran")
	}
}

func TestWorkerPoolSubmitAfterCloseIsNoop(t *testing.T) {
	pool := ftp.NewWorkerPool(1)
	pool.Close()

	var ran atomic.Bool
	pool.Submit(ftp.Task{Run: func() { ran.Store(true) }})

	time.Sleep(10 * time.Millisecond)
	if ran.Load() {
		t.Fatal("task ran after pool was closed")
	}
}
