package tron

import "github.com/samber/lo"

// Result pairs a value with the error that produced it, for delivery over a
// channel.
type Result[T any] struct {
	Value T
	Err   error
}

// Unwrap returns the value and error as an ordinary call result.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// CallAsync runs Call on its own goroutine and delivers the single outcome
// on the returned channel. The channel is buffered, so the outcome may be
// received at any later point without leaking the goroutine.
func (m *Method) CallAsync(opts *CallOpts, args ...any) <-chan Result[any] {
	return lo.Async(func() Result[any] {
		v, err := m.Call(opts, args...)
		return Result[any]{Value: v, Err: err}
	})
}

// SendAsync runs Send on its own goroutine and delivers the single outcome
// on the returned channel.
func (m *Method) SendAsync(opts *SendOpts, args ...any) <-chan Result[*SendResult] {
	return lo.Async(func() Result[*SendResult] {
		v, err := m.Send(opts, args...)
		return Result[*SendResult]{Value: v, Err: err}
	})
}
