// package main is an executable command for easylog(https://github.com/yuin/easylog),
// a small console logger for Go.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/yuin/easylog"
	"github.com/yuin/easylog/internal/selftest"
)

const defaultConfigPath = "easylog.yml"

func loadConfig(path string) (*easylog.Config, error) {
	config := easylog.DefaultConfig()
	if err := easylog.LoadConfig(config, path); err != nil {
		if path == defaultConfigPath && errors.Is(err, fs.ErrNotExist) {
			config = easylog.DefaultConfig()
		} else {
			return nil, err
		}
	}
	if len(os.Getenv("DEBUG")) != 0 {
		config.DebugMode = true
	}
	return config, nil
}

func exitOnFailure(o easylog.Outcome) {
	if o.Failed() {
		os.Exit(1)
	}
}

func main() {
	logCmd := flag.NewFlagSet("log", flag.ExitOnError)
	logConfig := logCmd.String("c", defaultConfigPath, "config file path")
	logSeverity := logCmd.String("s", "", "severity(log, debug, warn, error)")
	logForce := logCmd.Bool("f", false, "write the log even if the logger is silenced")
	logHelp := logCmd.Bool("h", false, "show this help")

	optionsCmd := flag.NewFlagSet("options", flag.ExitOnError)
	optionsConfig := optionsCmd.String("c", defaultConfigPath, "config file path")

	selftestCmd := flag.NewFlagSet("selftest", flag.ExitOnError)
	selftestConfig := selftestCmd.String("c", defaultConfigPath, "config file path")

	cmdName := "log"
	args := []string{}
	if len(os.Args) > 1 {
		cmdName = os.Args[1]
		args = os.Args[2:]
	}
redo:

	switch cmdName {
	case "log":
		err := logCmd.Parse(args)
		if err != nil {
			easylog.Error(err)
			os.Exit(1)
		}
		if *logHelp || logCmd.NArg() == 0 {
			logCmd.Usage()
			os.Exit(1)
		}
		config, err := loadConfig(*logConfig)
		if err != nil {
			easylog.Error(err)
			os.Exit(1)
		}
		severity := config.Severity
		if len(*logSeverity) != 0 {
			severity, err = easylog.ParseSeverity(*logSeverity)
			if err != nil {
				easylog.Error(err)
				os.Exit(1)
			}
		}
		logger := easylog.NewFromConfig(config)
		extras := make([]any, 0, logCmd.NArg()-1)
		for _, a := range logCmd.Args()[1:] {
			extras = append(extras, a)
		}
		if *logForce {
			exitOnFailure(logger.ForceLog(logCmd.Arg(0), severity, extras...))
		} else {
			exitOnFailure(logger.Dispatch(logCmd.Arg(0), severity, extras...))
		}
	case "options":
		if err := optionsCmd.Parse(args); err != nil {
			easylog.Error(err)
			os.Exit(1)
		}
		config, err := loadConfig(*optionsConfig)
		if err != nil {
			easylog.Error(err)
			os.Exit(1)
		}
		for _, v := range []struct {
			name  string
			value any
		}{
			{"options", config.Options},
			{"console", config.Console},
		} {
			s, err := easylog.PrettyString(v.value, v.name)
			if err != nil {
				easylog.Error(err)
				os.Exit(1)
			}
			fmt.Println(s)
		}
		fmt.Printf("severity: %s\n", config.Severity)
	case "selftest":
		if err := selftestCmd.Parse(args); err != nil {
			easylog.Error(err)
			os.Exit(1)
		}
		config, err := loadConfig(*selftestConfig)
		if err != nil {
			easylog.Error(err)
			os.Exit(1)
		}
		report := selftest.Run(easylog.NewFromConfig(config), os.Stdout)
		fmt.Printf("success: %d, declined: %d, failed: %d\n",
			report.Count(easylog.OutcomeSuccess),
			report.Count(easylog.OutcomeDeclined),
			report.Count(easylog.OutcomeFailed))
	case "-h":
		fmt.Fprint(os.Stderr, `easylog [COMMAND|-h]
  COMMANDS:
    log: writes a log(default)
    options: shows effective options
    selftest: runs all entry points with various options
  OPTIONS:
    -h: show this help
`)
		os.Exit(1)
	default:
		cmdName = "log"
		args = os.Args[1:]
		goto redo
	}
}
