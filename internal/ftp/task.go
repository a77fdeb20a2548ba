package ftp

// Task is a unit of work submitted to a WorkerPool: one client command to
// execute against one session.
type Task struct {
	// SessionID identifies which Session the task operates on.
	SessionID uint64

	// Run performs the work. It is invoked by a pool worker goroutine.
	Run func()
}
