package main

import (
	"context"
	"fmt"

	"github.com/St1cky1/task-management/internal/config"
	"github.com/St1cky1/task-management/internal/infrastructure/client"
	"github.com/St1cky1/task-management/internal/migrations"
	"github.com/St1cky1/task-management/internal/repository"
	"github.com/St1cky1/task-management/internal/repository/sqlite"
	"github.com/sirupsen/logrus"
)

// storage bundles the repositories of the configured driver.
type storage struct {
	tx     repository.Transactor
	people repository.IPersonRepository
	tasks  repository.ITaskRepository
	audit  repository.IAuditRepository
	ping   func(ctx context.Context) error
	close  func()
}

func (s *storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// openStorage migrates the schema and opens the repositories.
func openStorage(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*storage, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		if err := migrations.UpPostgres(cfg.PostgresURL()); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pg, err := client.NewPostgresClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.WithField("host", cfg.DBHost).Info("connected to postgres")
		return &storage{
			tx:     repository.NewTxManager(pg.Pool),
			people: repository.NewPersonRepository(pg.Pool),
			tasks:  repository.NewTaskRepository(pg.Pool),
			audit:  repository.NewAuditRepository(pg.Pool),
			ping:   pg.HealthCheck,
			close:  pg.Close,
		}, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("opened sqlite database")
		return &storage{
			tx:     store,
			people: store.People(),
			tasks:  store.Tasks(),
			audit:  store.Audit(),
			ping:   store.Ping,
			close: func() {
				if err := store.Close(); err != nil {
					log.WithError(err).Warn("close sqlite database")
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}
