package fallback

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/graphics"
)

// Factory creates a backend compositor for one requested backend name.
// It returns a *graphics.AdapterNotFoundError when the name selects
// another backend or no device is available.
type Factory[R core.Renderer, S any] func(settings graphics.Settings, window graphics.Window, backend string) (graphics.Compositor[R, S], error)

// Adapt turns a backend constructor returning a concrete compositor into a
// Factory.
func Adapt[C graphics.Compositor[R, S], R core.Renderer, S any](
	create func(graphics.Settings, graphics.Window, string) (C, error),
) Factory[R, S] {
	return func(settings graphics.Settings, window graphics.Window, backend string) (graphics.Compositor[R, S], error) {
		c, err := create(settings, window, backend)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// New creates a compositor for window. For each backend candidate of
// settings, in order, it tries primary and then secondary; the first that
// succeeds is held for the compositor's lifetime. When every attempt
// fails, the joined errors are returned.
func New[RA core.Renderer, SA any, RB core.Renderer, SB any](
	settings graphics.Settings,
	window graphics.Window,
	primary Factory[RA, SA],
	secondary Factory[RB, SB],
) (*Compositor[RA, SA, RB, SB], error) {
	log := graphics.Logger()
	var errs []error
	for _, name := range settings.Candidates() {
		a, err := primary(settings, window, name)
		if err == nil {
			log.Info("fallback: selected backend", "variant", Primary, "requested", name)
			return NewPrimaryCompositor[RA, SA, RB, SB](a), nil
		}
		rejected(log, Primary, name, err)
		errs = append(errs, err)

		b, err := secondary(settings, window, name)
		if err == nil {
			log.Info("fallback: selected backend", "variant", Secondary, "requested", name)
			return NewSecondaryCompositor[RA, SA, RB, SB](b), nil
		}
		rejected(log, Secondary, name, err)
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// rejected logs a failed attempt. A name owned by the other backend is
// expected and only logged at debug level.
func rejected(log *slog.Logger, v Variant, name string, err error) {
	level := slog.LevelWarn
	var anf *graphics.AdapterNotFoundError
	if errors.As(err, &anf) && anf.Reason == graphics.DidNotMatch {
		level = slog.LevelDebug
	}
	log.Log(context.Background(), level, "fallback: backend rejected", "variant", v, "requested", name, "err", err)
}
