package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const descriptionRule = "required,max=255"

type TaskService struct {
	tx         repository.Transactor
	taskRepo   repository.ITaskRepository
	personRepo repository.IPersonRepository
	audit      *auditor
	validate   *validator.Validate
	now        func() time.Time
}

// NewTaskService wires the task service. now supplies creation timestamps;
// nil means time.Now.
func NewTaskService(
	tx repository.Transactor,
	taskRepo repository.ITaskRepository,
	personRepo repository.IPersonRepository,
	publisher AuditPublisher,
	log logrus.FieldLogger,
	now func() time.Time,
) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		tx:         tx,
		taskRepo:   taskRepo,
		personRepo: personRepo,
		audit:      newAuditor(publisher, log, now),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		now:        now,
	}
}

// CreateTask stores a new, not yet done task. person and dueDate are optional.
func (s *TaskService) CreateTask(ctx context.Context, description string, person *entity.Person, dueDate *time.Time) (*entity.Task, error) {
	description = strings.TrimSpace(description)
	if err := s.validateDescription(description); err != nil {
		return nil, err
	}

	task := &entity.Task{
		Description:  description,
		Person:       person,
		DueDate:      entity.DateOnlyPtr(dueDate),
		CreationDate: s.now().UTC(),
		Done:         false,
	}

	var created *entity.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensurePerson(ctx, person); err != nil {
			return err
		}
		var err error
		created, err = s.taskRepo.Create(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(entity.ActionCreate, entity.EntityTypeTask, created.ID, nil, taskValues(created))
	return created, nil
}

// UpdateTask persists the full task state. The stored creation date always
// wins over whatever the caller carries.
func (s *TaskService) UpdateTask(ctx context.Context, task *entity.Task) error {
	if task == nil {
		return entity.ErrInvalidTaskData
	}
	task.Description = strings.TrimSpace(task.Description)
	if err := s.validateDescription(task.Description); err != nil {
		return err
	}

	var oldTask, updated *entity.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		oldTask, updated, err = s.update(ctx, task.ID, func(t *entity.Task) {
			t.Description = task.Description
			t.Person = task.Person
			t.DueDate = entity.DateOnlyPtr(task.DueDate)
			t.Done = task.Done
		})
		return err
	})
	if err != nil {
		return err
	}

	task.CreationDate = updated.CreationDate
	s.audit.record(entity.ActionUpdate, entity.EntityTypeTask, updated.ID, taskValues(oldTask), taskValues(updated))
	return nil
}

// SetDone flips the completion flag of one task.
func (s *TaskService) SetDone(ctx context.Context, id int64, done bool) (*entity.Task, error) {
	var oldTask, updated *entity.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		oldTask, updated, err = s.update(ctx, id, func(t *entity.Task) {
			t.Done = done
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(entity.ActionUpdate, entity.EntityTypeTask, id, taskValues(oldTask), taskValues(updated))
	return updated, nil
}

// DeleteTask - удаление задачи
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	var task *entity.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.taskRepo.GetByTaskId(ctx, id)
		if err != nil {
			return err
		}
		if task == nil {
			return entity.ErrTaskNotFound
		}
		return s.taskRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.audit.record(entity.ActionDelete, entity.EntityTypeTask, id, taskValues(task), nil)
	return nil
}

// List returns one materialised page of tasks.
func (s *TaskService) List(ctx context.Context, page entity.PageRequest) ([]entity.Task, error) {
	var tasks []entity.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		tasks, err = s.taskRepo.List(ctx, page.Normalize())
		return err
	})
	return tasks, err
}

func (s *TaskService) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		total, err = s.taskRepo.Count(ctx)
		return err
	})
	return total, err
}

// FindByPerson returns every task owned by person. It is not paged.
func (s *TaskService) FindByPerson(ctx context.Context, person *entity.Person) ([]entity.Task, error) {
	if person == nil {
		return nil, fmt.Errorf("%w: person is required", entity.ErrInvalidTaskData)
	}
	var tasks []entity.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		tasks, err = s.taskRepo.ListByPerson(ctx, person.ID)
		return err
	})
	return tasks, err
}

// FindByID returns nil, nil when no task has the id.
func (s *TaskService) FindByID(ctx context.Context, id int64) (*entity.Task, error) {
	var task *entity.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.taskRepo.GetByTaskId(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// update loads the task, applies mutate to a copy and writes it back. Must
// run inside a transaction.
func (s *TaskService) update(ctx context.Context, id int64, mutate func(t *entity.Task)) (*entity.Task, *entity.Task, error) {
	oldTask, err := s.taskRepo.GetByTaskId(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if oldTask == nil {
		return nil, nil, entity.ErrTaskNotFound
	}

	next := *oldTask
	mutate(&next)
	next.ID = oldTask.ID
	next.CreationDate = oldTask.CreationDate
	if err := s.ensurePerson(ctx, next.Person); err != nil {
		return nil, nil, err
	}

	updated, err := s.taskRepo.Update(ctx, &next)
	if err != nil {
		return nil, nil, err
	}
	return oldTask, updated, nil
}

func (s *TaskService) ensurePerson(ctx context.Context, person *entity.Person) error {
	if person == nil {
		return nil
	}
	found, err := s.personRepo.GetById(ctx, person.ID)
	if err != nil {
		return err
	}
	if found == nil {
		return entity.ErrPersonNotFound
	}
	return nil
}

func (s *TaskService) validateDescription(description string) error {
	if err := s.validate.Var(description, descriptionRule); err != nil {
		return fmt.Errorf("%w: description must be 1-%d characters", entity.ErrInvalidTaskData, entity.TaskDescriptionMaxLength)
	}
	return nil
}
