package veinminer

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/gookit/color"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"go.minekube.com/veinminer/pkg/internal/reload"
	"go.minekube.com/veinminer/pkg/util/interrupt"
	"go.minekube.com/veinminer/pkg/veinminer"
	"go.minekube.com/veinminer/pkg/veinminer/config"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate the configuration file",
		Description: `Load and validate the --config file.
Warnings and errors are logged. With --watch the file is
validated again on every change until interrupted.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Validate again whenever the config file changes",
			},
		},
		Action: func(c *cli.Context) error {
			log, err := logger(c)
			if err != nil {
				return cli.Exit(err, 1)
			}
			path := c.String("config")
			validate := func() error { return validateFile(c, log, path) }

			if !c.Bool("watch") {
				if err = validate(); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			}

			if err = validate(); err != nil {
				log.Info("config is invalid", "error", err)
			}
			ctx, stop := interrupt.TerminationContext(c.Context)
			defer stop()
			if err = reload.Watch(logr.NewContext(ctx, log), path, validate); err != nil {
				return cli.Exit(fmt.Errorf("error watching config file: %w", err), 1)
			}
			log.Info("watching config file for changes", "path", path)
			<-ctx.Done()
			return nil
		},
	}
}

// validateFile loads and validates the config file against the built-in patterns.
func validateFile(c *cli.Context, log logr.Logger, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	warns, errs := cfg.Validate(veinminer.KeyString(veinminer.DefaultPatternKey))
	for _, warn := range warns {
		log.Info("config validation warning", "warn", warn)
	}
	for _, e := range errs {
		log.Info("config validation error", "error", e)
	}
	if len(errs) != 0 {
		return fmt.Errorf("config %q has %d validation error(s)", path, len(errs))
	}
	_, _ = fmt.Fprintln(c.App.Writer, color.Green.Sprintf("Config %s is valid", path),
		color.Yellow.Sprintf("(%d warning(s), %d tool categories)", len(warns), len(cfg.Categories)))
	return nil
}
