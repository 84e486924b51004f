// Package veinminer is the command line interface of VeinMiner.
package veinminer

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.minekube.com/veinminer/pkg/version"
)

// App returns the veinminer command line application.
func App() *cli.App {
	app := cli.NewApp()
	app.Name = "veinminer"
	app.Usage = "Tools for the VeinMiner plugin message protocol and configuration."
	app.Description = `Validate VeinMiner configurations and inspect protocol payloads.

	veinminer config --write
	veinminer --config config.yml validate --watch
	veinminer decode --direction serverbound 0001`
	app.Version = version.String()
	// -v is verbosity
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "The config file to use",
			Value:   "config.yml",
			EnvVars: []string{"VEINMINER_CONFIG"},
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug mode and highest log verbosity",
			EnvVars: []string{"VEINMINER_DEBUG"},
		},
		&cli.IntFlag{
			Name:    "verbosity",
			Aliases: []string{"v"},
			Usage:   "The higher the verbosity the more logs are shown",
			EnvVars: []string{"VEINMINER_VERBOSITY"},
		},
	}
	app.Commands = []*cli.Command{
		configCommand(),
		validateCommand(),
		decodeCommand(),
	}
	return app
}

// logger returns the logger configured by the global flags.
func logger(c *cli.Context) (logr.Logger, error) {
	verbosity := c.Int("verbosity")
	if c.Bool("debug") {
		verbosity = 10
	}
	l, err := newZapLogger(c.Bool("debug"), verbosity)
	if err != nil {
		return logr.Discard(), fmt.Errorf("error creating zap logger: %w", err)
	}
	return l, nil
}

func newZapLogger(dev bool, verbosity int) (logr.Logger, error) {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}
