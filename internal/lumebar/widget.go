package lumebar

import (
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"gopkg.in/yaml.v3"
)

func newWidget(widgetType string) (widget, error) {
	if widgetType == "" {
		return nil, fmt.Errorf("widget 'type' property is empty or not specified")
	}

	var w widget

	switch widgetType {
	case "clock":
		w = &clockWidget{}
	default:
		return nil, fmt.Errorf("unknown widget type: %s", widgetType)
	}

	return w, nil
}

type widgets []widget

func (w *widgets) UnmarshalYAML(node *yaml.Node) error {
	var nodes []yaml.Node

	if err := node.Decode(&nodes); err != nil {
		return err
	}

	for _, node := range nodes {
		meta := struct {
			Type string `yaml:"type"`
		}{}

		if err := node.Decode(&meta); err != nil {
			return err
		}

		widget, err := newWidget(meta.Type)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		if err = node.Decode(widget); err != nil {
			return err
		}

		*w = append(*w, widget)
	}

	return nil
}

type widget interface {
	initialize() error
	update() error
	handleScroll(dir scrollDir) bool
	handleLeave()
	label() string
	tooltip() string
	refreshInterval() time.Duration
	widgetType() string
	setProviders(*widgetProviders)
}

// widgetProviders are the host collaborators a widget gets to talk back to
// the bar. Every entry is optional; missing ones fall back to the real
// environment, which keeps widgets injectable in tests.
type widgetProviders struct {
	notifyContentChanged func()
	runCommand           func(command string) error
	now                  func() time.Time
	firstDay             firstDayProvider
}

type widgetBase struct {
	Type         string        `yaml:"type"`
	Interval     durationField `yaml:"interval"`
	Tooltip      *bool         `yaml:"tooltip"`
	OnScrollUp   string        `yaml:"on-scroll-up"`
	OnScrollDown string        `yaml:"on-scroll-down"`

	providers   *widgetProviders
	labelText   string
	tooltipText string
}

func (w *widgetBase) widgetType() string {
	return w.Type
}

func (w *widgetBase) setProviders(providers *widgetProviders) {
	w.providers = providers
}

func (w *widgetBase) refreshInterval() time.Duration {
	if w.Interval > 0 {
		return time.Duration(w.Interval)
	}

	return time.Minute
}

func (w *widgetBase) label() string {
	return w.labelText
}

func (w *widgetBase) tooltip() string {
	return w.tooltipText
}

func (w *widgetBase) setLabel(text string) {
	w.labelText = text
}

func (w *widgetBase) setTooltip(text string) {
	w.tooltipText = text
}

func (w *widgetBase) tooltipEnabled() bool {
	return w.Tooltip == nil || *w.Tooltip
}

func (w *widgetBase) contentChanged() {
	if w.providers != nil && w.providers.notifyContentChanged != nil {
		w.providers.notifyContentChanged()
	}
}

func (w *widgetBase) now() time.Time {
	if w.providers != nil && w.providers.now != nil {
		return w.providers.now()
	}

	return time.Now()
}

func (w *widgetBase) firstDayProvider() firstDayProvider {
	if w.providers != nil && w.providers.firstDay != nil {
		return w.providers.firstDay
	}

	return cldrFirstDay{}
}

func (w *widgetBase) handleLeave() {}

func (w *widgetBase) hasScrollCommands() bool {
	return w.OnScrollUp != "" || w.OnScrollDown != ""
}

// handleScroll dispatches the configured scroll command, if any. Widgets
// with their own scroll behavior override this and only delegate here when
// command overrides are configured.
func (w *widgetBase) handleScroll(dir scrollDir) bool {
	var command string

	switch dir {
	case scrollUp:
		command = w.OnScrollUp
	case scrollDown:
		command = w.OnScrollDown
	}

	if command == "" {
		return true
	}

	if err := w.runCommand(command); err != nil {
		slog.Error("scroll command failed", "command", command, "error", err)
	}

	return true
}

func (w *widgetBase) runCommand(command string) error {
	if w.providers != nil && w.providers.runCommand != nil {
		return w.providers.runCommand(command)
	}

	return runShellCommand(command)
}

func runShellCommand(command string) error {
	return exec.Command("sh", "-c", command).Run()
}

type scrollDir uint8

const (
	scrollNone scrollDir = iota
	scrollUp
	scrollDown
	scrollLeft
	scrollRight
)

func parseScrollDir(s string) scrollDir {
	switch s {
	case "up":
		return scrollUp
	case "down":
		return scrollDown
	case "left":
		return scrollLeft
	case "right":
		return scrollRight
	default:
		return scrollNone
	}
}
