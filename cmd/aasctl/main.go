package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/finki-emc/aas-client/internal/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "aasctl",
		Usage: "Administrative console for the Academic Assessment System",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "aasctl.yaml",
				Usage:   "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			coursesCommand(),
			examsCommand(),
			studentsCommand(),
			usersCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
