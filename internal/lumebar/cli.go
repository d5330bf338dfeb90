package lumebar

import (
	"flag"
	"os"
)

type cliIntent uint8

const (
	cliIntentRun cliIntent = iota
	cliIntentCheckConfig
)

type cliOptions struct {
	intent     cliIntent
	configPath string
}

func parseCliOptions() (*cliOptions, error) {
	flags := flag.NewFlagSet("", flag.ExitOnError)

	checkConfig := flags.Bool("check-config", false, "Check whether the config is valid")
	configPath := flags.String("config", "lumebar.yml", "Set config path")

	err := flags.Parse(os.Args[1:])
	if err != nil {
		return nil, err
	}

	intent := cliIntentRun
	if *checkConfig {
		intent = cliIntentCheckConfig
	}

	return &cliOptions{
		intent:     intent,
		configPath: *configPath,
	}, nil
}
