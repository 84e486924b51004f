package veinminer

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"go.minekube.com/veinminer/pkg/configs"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Output default configuration file",
		Description: `Output the default configuration file to stdout or a file.
You can redirect to a file or use the --write flag:

	veinminer config > config.yml
	veinminer config --write              # Writes to the --config file`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write config to the --config file instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("write") {
				outputFile := c.String("config")
				if _, err := os.Stat(outputFile); err == nil {
					return cli.Exit(fmt.Sprintf("config file %q already exists", outputFile), 1)
				}
				err := os.WriteFile(outputFile, configs.DefaultConfigBytes, 0o644)
				if err != nil {
					return cli.Exit(fmt.Errorf("error writing config to %q: %w", outputFile, err), 1)
				}
				_, _ = fmt.Fprintf(c.App.Writer, "Configuration written to %s\n", outputFile)
				return nil
			}

			_, err := c.App.Writer.Write(configs.DefaultConfigBytes)
			if err != nil {
				return cli.Exit(fmt.Errorf("error writing config: %w", err), 1)
			}
			return nil
		},
	}
}
