package usecase

import (
	"context"
	"sync"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/repository"
)

// MockTransactor - мок для Transactor, считает транзакции
type MockTransactor struct {
	mu    sync.Mutex
	Calls int
	Err   error
}

var _ repository.Transactor = (*MockTransactor)(nil)

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

// MockTaskRepository - мок для ITaskRepository
type MockTaskRepository struct {
	CreateFunc         func(ctx context.Context, task *entity.Task) (*entity.Task, error)
	GetByTaskIdFunc    func(ctx context.Context, id int64) (*entity.Task, error)
	UpdateFunc         func(ctx context.Context, task *entity.Task) (*entity.Task, error)
	DeleteFunc         func(ctx context.Context, id int64) error
	ListFunc           func(ctx context.Context, page entity.PageRequest) ([]entity.Task, error)
	CountFunc          func(ctx context.Context) (int64, error)
	ListByPersonFunc   func(ctx context.Context, personID int64) ([]entity.Task, error)
	UnassignPersonFunc func(ctx context.Context, personID int64) (int64, error)
}

var _ repository.ITaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil, nil
}

func (m *MockTaskRepository) GetByTaskId(ctx context.Context, id int64) (*entity.Task, error) {
	if m.GetByTaskIdFunc != nil {
		return m.GetByTaskIdFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil, nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) List(ctx context.Context, page entity.PageRequest) ([]entity.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page)
	}
	return nil, nil
}

func (m *MockTaskRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockTaskRepository) ListByPerson(ctx context.Context, personID int64) ([]entity.Task, error) {
	if m.ListByPersonFunc != nil {
		return m.ListByPersonFunc(ctx, personID)
	}
	return nil, nil
}

func (m *MockTaskRepository) UnassignPerson(ctx context.Context, personID int64) (int64, error) {
	if m.UnassignPersonFunc != nil {
		return m.UnassignPersonFunc(ctx, personID)
	}
	return 0, nil
}

// MockPersonRepository - мок для IPersonRepository
type MockPersonRepository struct {
	CreateFunc  func(ctx context.Context, person *entity.Person) (*entity.Person, error)
	GetByIdFunc func(ctx context.Context, id int64) (*entity.Person, error)
	UpdateFunc  func(ctx context.Context, person *entity.Person) (*entity.Person, error)
	DeleteFunc  func(ctx context.Context, id int64) error
	ListFunc    func(ctx context.Context, page entity.PageRequest) ([]entity.Person, error)
	CountFunc   func(ctx context.Context) (int64, error)
}

var _ repository.IPersonRepository = (*MockPersonRepository)(nil)

func (m *MockPersonRepository) Create(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, person)
	}
	return nil, nil
}

func (m *MockPersonRepository) GetById(ctx context.Context, id int64) (*entity.Person, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPersonRepository) Update(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, person)
	}
	return nil, nil
}

func (m *MockPersonRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPersonRepository) List(ctx context.Context, page entity.PageRequest) ([]entity.Person, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page)
	}
	return nil, nil
}

func (m *MockPersonRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockAuditPublisher - мок для AuditPublisher, сообщения уходят в канал
type MockAuditPublisher struct {
	Messages chan *entity.AuditMessage
}

func newMockAuditPublisher() *MockAuditPublisher {
	return &MockAuditPublisher{Messages: make(chan *entity.AuditMessage, 16)}
}

func (m *MockAuditPublisher) PublishAuditMessage(_ context.Context, message *entity.AuditMessage) error {
	m.Messages <- message
	return nil
}
