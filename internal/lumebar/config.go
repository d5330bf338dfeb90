package lumebar

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type config struct {
	Separator string  `yaml:"separator"`
	Widgets   widgets `yaml:"widgets"`
}

func newConfig() *config {
	return &config{
		Separator: "  ",
	}
}

func newConfigFromYAML(contents io.Reader) (*config, error) {
	config := newConfig()

	contentBytes, err := io.ReadAll(contents)
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(contentBytes, config); err != nil {
		return nil, err
	}

	if err = configIsValid(config); err != nil {
		return nil, err
	}

	return config, nil
}

func newConfigFromFile(path string) (*config, error) {
	configFile, err := os.Open(path)
	if err != nil {
		return nil, errors.New("failed opening config file: " + err.Error())
	}
	defer configFile.Close()

	return newConfigFromYAML(configFile)
}

func configIsValid(config *config) error {
	if len(config.Widgets) == 0 {
		return errors.New("config has no widgets")
	}

	return nil
}

var durationFieldPattern = regexp.MustCompile(`^(\d+)(s|m|h|d)$`)

// durationField accepts either a bare number of seconds or a value with an
// explicit unit, e.g. `interval: 60` and `interval: 5m`.
type durationField time.Duration

func (d *durationField) UnmarshalYAML(node *yaml.Node) error {
	var seconds int
	if err := node.Decode(&seconds); err == nil {
		*d = durationField(time.Duration(seconds) * time.Second)
		return nil
	}

	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}

	matches := durationFieldPattern.FindStringSubmatch(value)
	if len(matches) != 3 {
		return fmt.Errorf("invalid duration format: %s", value)
	}

	duration, err := strconv.Atoi(matches[1])
	if err != nil {
		return err
	}

	switch matches[2] {
	case "s":
		*d = durationField(time.Duration(duration) * time.Second)
	case "m":
		*d = durationField(time.Duration(duration) * time.Minute)
	case "h":
		*d = durationField(time.Duration(duration) * time.Hour)
	case "d":
		*d = durationField(time.Duration(duration) * 24 * time.Hour)
	}

	return nil
}

type weeksPosField uint8

const (
	weeksHidden weeksPosField = iota
	weeksLeft
	weeksRight
)

func (p *weeksPosField) UnmarshalYAML(node *yaml.Node) error {
	var value string

	if err := node.Decode(&value); err != nil {
		return err
	}

	switch value {
	case "left":
		*p = weeksLeft
	case "right":
		*p = weeksRight
	default:
		return fmt.Errorf("calendar-weeks-pos must be either left or right: %s", value)
	}

	return nil
}
