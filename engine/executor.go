package engine

// Executor runs completion callbacks for response futures. Implementations
// decide the goroutine the callback executes on.
type Executor interface {
	Execute(fn func())
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(fn func())

// Execute calls f(fn).
func (f ExecutorFunc) Execute(fn func()) { f(fn) }

// GoExecutor runs each callback on a fresh goroutine.
type GoExecutor struct{}

// Execute runs fn on a new goroutine.
func (GoExecutor) Execute(fn func()) { go fn() }

// SyncExecutor runs each callback inline on the resolving goroutine.
type SyncExecutor struct{}

// Execute runs fn immediately.
func (SyncExecutor) Execute(fn func()) { fn() }
