// Package hook delivers global key press notifications to the daemon.
package hook

import "context"

// Source emits one notification per physical key press.
//
// Listen blocks until ctx is cancelled, the underlying hook fails, or
// onPress returns an error. Cancellation is a clean stop and returns nil.
// ready is called once, after the hook is installed and before the first
// press. Key identity is never passed to onPress.
type Source interface {
	Listen(ctx context.Context, ready func(), onPress func() error) error
}

// SourceFunc adapts a function literal to the Source interface.
type SourceFunc func(ctx context.Context, ready func(), onPress func() error) error

// Listen calls the underlying function.
func (f SourceFunc) Listen(ctx context.Context, ready func(), onPress func() error) error {
	return f(ctx, ready, onPress)
}
