package hook

import (
	"context"
	"fmt"
	"time"

	gohook "github.com/robotn/gohook"

	"github.com/keystr/keystr/internal/errors"
	"github.com/keystr/keystr/internal/logging"
)

// SystemSource listens to the OS-wide keyboard via libuiohook.
// Only one SystemSource may listen per process.
type SystemSource struct {
	installTimeout time.Duration
}

// NewSystemSource returns the OS keyboard source. installTimeout bounds the
// wait for libuiohook to report that the hook is enabled.
func NewSystemSource(installTimeout time.Duration) *SystemSource {
	return &SystemSource{installTimeout: installTimeout}
}

// Listen starts the OS hook and stops it again before returning.
//
// libuiohook reports an install failure only in its own log and never
// closes the event channel, so a missing HookEnabled event within the
// install timeout is treated as a failed install.
func (s *SystemSource) Listen(ctx context.Context, ready func(), onPress func() error) error {
	logging.DebugLog("starting keyboard hook", "timeout", s.installTimeout)
	events := gohook.Start()
	defer gohook.End()

	return listen(ctx, events, s.installTimeout, ready, onPress)
}

func listen(ctx context.Context, events <-chan gohook.Event, timeout time.Duration, ready func(), onPress func() error) error {
	enabled, err := awaitEnabled(ctx, events, timeout)
	if err != nil || !enabled {
		return err
	}
	logging.DebugLog("keyboard hook enabled")
	ready()
	return pump(ctx, events, onPress)
}

// awaitEnabled consumes events until HookEnabled arrives. It returns false
// with a nil error when ctx is cancelled first.
func awaitEnabled(ctx context.Context, events <-chan gohook.Event, timeout time.Duration) (bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, nil
		case <-timer.C:
			return false, errors.NewSystemErrorWithOp("listen",
				fmt.Sprintf("keyboard hook was not enabled within %s", timeout), errors.ErrHookInstall)
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return false, nil
				}
				return false, errors.NewSystemErrorWithOp("listen", "keyboard hook closed before it was enabled", errors.ErrHookInstall)
			}
			switch ev.Kind {
			case gohook.HookEnabled:
				return true, nil
			case gohook.HookDisabled:
				return false, errors.NewSystemErrorWithOp("listen", "keyboard hook was disabled before it was enabled", errors.ErrHookInstall)
			}
		}
	}
}

// pump forwards key-pressed events. Typed, released and mouse events are
// dropped so that one physical press counts once.
func pump(ctx context.Context, events <-chan gohook.Event, onPress func() error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.NewSystemErrorWithOp("listen", "keyboard hook stopped unexpectedly", errors.ErrHookClosed)
			}
			switch ev.Kind {
			case gohook.KeyHold:
				if err := onPress(); err != nil {
					return err
				}
			case gohook.HookDisabled:
				if ctx.Err() != nil {
					return nil
				}
				return errors.NewSystemErrorWithOp("listen", "keyboard hook was disabled", errors.ErrHookClosed)
			}
		}
	}
}
