package application

import "context"

// Result is the tagged outcome of a Task: either Value or Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// Task is a single asynchronous operation whose result is awaited explicitly.
// The operation receives the context passed to Go and should honor it.
type Task[T any] struct {
	done   chan struct{}
	result Result[T]
}

// Go starts fn on its own goroutine and returns the Task tracking it.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		v, err := fn(ctx)
		t.result = Result[T]{Value: v, Err: err}
	}()
	return t
}

// Await blocks until the task finishes or ctx is done. When ctx ends first
// the task keeps running in the background and its result is dropped; the
// returned Result carries ctx.Err().
func (t *Task[T]) Await(ctx context.Context) Result[T] {
	select {
	case <-t.done:
		return t.result
	case <-ctx.Done():
		return Result[T]{Err: ctx.Err()}
	}
}

// Done is closed once the task has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}
