package main

import (
	"fmt"
	"os"

	"github.com/St1cky1/task-management/internal/config"
	"github.com/St1cky1/task-management/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "taskmanagement",
		Usage: "task and people management web application",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "env-file",
				Usage:   "dotenv files to load before reading the environment",
				Value:   cli.NewStringSlice(".env"),
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP, gRPC health and audit worker servers",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending schema migrations and exit",
				Action: migrate,
			},
			{
				Name:   "seed",
				Usage:  "create demo data",
				Action: seed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("taskmanagement stopped")
	}
}

// setup загружает конфиг и создает логгер
func setup(c *cli.Context) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(c.StringSlice("env-file")...)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	return cfg, log, nil
}

func migrate(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	store, err := openStorage(c.Context, cfg, log)
	if err != nil {
		return err
	}
	store.Close()
	log.WithField("driver", cfg.DBDriver).Info("migrations applied")
	return nil
}
