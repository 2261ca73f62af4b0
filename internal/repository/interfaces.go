package repository

import (
	"context"

	"github.com/St1cky1/task-management/internal/entity"
)

// Transactor runs fn inside a brand new transaction. It never joins a
// transaction already carried by ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// IPersonRepository - интерфейс для PersonRepository
type IPersonRepository interface {
	Create(ctx context.Context, person *entity.Person) (*entity.Person, error)
	// GetById returns nil, nil when the person does not exist.
	GetById(ctx context.Context, id int64) (*entity.Person, error)
	Update(ctx context.Context, person *entity.Person) (*entity.Person, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page entity.PageRequest) ([]entity.Person, error)
	Count(ctx context.Context) (int64, error)
}

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	Create(ctx context.Context, task *entity.Task) (*entity.Task, error)
	// GetByTaskId returns nil, nil when the task does not exist.
	GetByTaskId(ctx context.Context, id int64) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) (*entity.Task, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page entity.PageRequest) ([]entity.Task, error)
	Count(ctx context.Context) (int64, error)
	ListByPerson(ctx context.Context, personID int64) ([]entity.Task, error)
	UnassignPerson(ctx context.Context, personID int64) (int64, error)
}

// IAuditRepository - интерфейс для AuditRepository
type IAuditRepository interface {
	Create(ctx context.Context, record *entity.AuditRecord) error
	ListByEntity(ctx context.Context, entityType string, entityID int64) ([]entity.AuditRecord, error)
}
