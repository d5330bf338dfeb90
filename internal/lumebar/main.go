package lumebar

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
)

func Main() int {
	options, err := parseCliOptions()
	if err != nil {
		fmt.Println(err)
		return 1
	}

	if options.intent == cliIntentCheckConfig {
		config, err := newConfigFromFile(options.configPath)
		if err != nil {
			fmt.Println(err)
			return 1
		}
		if _, err := newBar(config, io.Discard, nil); err != nil {
			fmt.Println(err)
			return 1
		}
		fmt.Println("config is valid")
		return 0
	}

	if err := runBar(options.configPath); err != nil {
		fmt.Println(err)
		return 1
	}

	return 0
}

// runBar runs the bar against the config file, restarting it whenever the
// file is modified. It returns when the input stream is closed.
func runBar(configPath string) error {
	events := make(chan inputEvent, 8)
	go readInput(os.Stdin, events)

	for {
		config, err := newConfigFromFile(configPath)
		if err != nil {
			return err
		}

		bar, err := newBar(config, os.Stdout, nil)
		if err != nil {
			return err
		}

		changed, closeWatcher, err := watchConfigFile(configPath)
		if err != nil {
			slog.Warn("config file watching disabled", "error", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		runErr := make(chan error, 1)
		go func() {
			runErr <- bar.run(ctx, events)
		}()

		select {
		case err := <-runErr:
			cancel()
			closeWatcher()
			return err
		case <-changed:
			slog.Info("config file modified, restarting bar")
			cancel()
			<-runErr
			closeWatcher()
		}
	}
}

// watchConfigFile signals on the returned channel whenever the config file
// is written to.
func watchConfigFile(configPath string) (<-chan struct{}, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, func() {}, err
	}

	changed := make(chan struct{}, 1)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					select {
					case changed <- struct{}{}:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("config watcher error", "error", err)
			}
		}
	}()

	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, func() {}, err
	}

	return changed, func() { watcher.Close() }, nil
}

// readInput feeds pointer events from r into events, one per line: a scroll
// direction optionally followed by a widget index ("up", "down 1"), or
// "leave". The channel is closed when r is exhausted.
func readInput(r io.Reader, events chan<- inputEvent) {
	defer close(events)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		event := inputEvent{}
		if len(fields) > 1 {
			index, err := strconv.Atoi(fields[1])
			if err != nil {
				continue
			}
			event.widget = index
		}

		switch {
		case fields[0] == "leave":
			event.leave = true
		default:
			event.dir = parseScrollDir(fields[0])
			if event.dir == scrollNone {
				continue
			}
		}

		events <- event
	}
}
