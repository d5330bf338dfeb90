package lumebar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// inputEvent is a pointer event delivered to a widget: a scroll in some
// direction or the pointer leaving the widget.
type inputEvent struct {
	widget int
	dir    scrollDir
	leave  bool
}

// bar owns the widgets and serializes every update and input event on a
// single goroutine, so widget state needs no locking. Tickers only signal
// that an update is due; the computation happens on the bar goroutine.
type bar struct {
	widgets   widgets
	separator string
	out       io.Writer
	dirty     bool
}

func newBar(config *config, out io.Writer, providers *widgetProviders) (*bar, error) {
	b := &bar{
		widgets:   config.Widgets,
		separator: config.Separator,
		out:       out,
	}

	p := widgetProviders{}
	if providers != nil {
		p = *providers
	}
	p.notifyContentChanged = func() { b.dirty = true }

	for _, w := range config.Widgets {
		w.setProviders(&p)
		if err := w.initialize(); err != nil {
			return nil, fmt.Errorf("initializing %s widget: %w", w.widgetType(), err)
		}
	}

	return b, nil
}

// run blocks until ctx is canceled or events is closed.
func (b *bar) run(ctx context.Context, events <-chan inputEvent) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	due := make(chan widget)

	for _, w := range b.widgets {
		w := w
		ticker := newBoundaryTicker(w.refreshInterval())
		ticker.start()

		g.Go(func() error {
			defer ticker.stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					select {
					case due <- w:
					case <-ctx.Done():
						return nil
					}
				}
			}
		})
	}

	g.Go(func() error {
		defer cancel()

		for _, w := range b.widgets {
			b.update(w)
		}
		b.repaint()

		for {
			select {
			case <-ctx.Done():
				return nil
			case w := <-due:
				b.update(w)
			case event, ok := <-events:
				if !ok {
					return nil
				}
				b.dispatch(event)
			}

			if b.dirty {
				b.repaint()
			}
		}
	})

	return g.Wait()
}

func (b *bar) update(w widget) {
	if err := w.update(); err != nil {
		slog.Error("widget update failed", "widget", w.widgetType(), "error", err)
	}
}

func (b *bar) dispatch(event inputEvent) {
	if event.widget < 0 || event.widget >= len(b.widgets) {
		return
	}

	w := b.widgets[event.widget]
	if event.leave {
		w.handleLeave()
		return
	}

	w.handleScroll(event.dir)
}

func (b *bar) repaint() {
	parts := make([]string, len(b.widgets))
	for i, w := range b.widgets {
		parts[i] = w.label()
	}

	fmt.Fprintln(b.out, strings.Join(parts, b.separator))
	b.dirty = false
}
