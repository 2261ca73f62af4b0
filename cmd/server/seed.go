package main

import (
	"errors"
	"fmt"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/usecase"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// seed создает тестовую персону с одной задачей
func seed(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	store, err := openStorage(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher := usecase.LogPublisher{Log: log}
	people := usecase.NewPersonService(store.tx, store.people, store.tasks, publisher, log)
	tasks := usecase.NewTaskService(store.tx, store.tasks, store.people, publisher, log, nil)

	person, err := people.CreatePerson(c.Context, "Ana", "Lopez", "123")
	if errors.Is(err, entity.ErrDuplicateDNI) {
		log.Info("seed data already present")
		return nil
	}
	if err != nil {
		return fmt.Errorf("create person: %w", err)
	}

	task, err := tasks.CreateTask(c.Context, "Buy milk", person, nil)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	log.WithFields(logrus.Fields{
		"person_id": person.ID,
		"task_id":   task.ID,
	}).Info("seed data created")
	return nil
}
