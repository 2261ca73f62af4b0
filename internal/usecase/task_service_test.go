package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/sirupsen/logrus"
)

var fixedNow = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func clock() time.Time { return fixedNow }

func waitAudit(t *testing.T, pub *MockAuditPublisher) *entity.AuditMessage {
	t.Helper()
	select {
	case msg := <-pub.Messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("Expected audit message, got none")
		return nil
	}
}

func TestCreateTaskSuccess(t *testing.T) {
	ctx := context.Background()
	ana := &entity.Person{ID: 1, FirstName: "Ana", LastName: "Lopez", DNI: "123"}
	due := time.Date(2024, 6, 1, 18, 45, 0, 0, time.UTC)

	var stored *entity.Task
	mockTaskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, task *entity.Task) (*entity.Task, error) {
			created := *task
			created.ID = 7
			stored = &created
			return stored, nil
		},
	}
	mockPersonRepo := &MockPersonRepository{
		GetByIdFunc: func(ctx context.Context, id int64) (*entity.Person, error) {
			if id == 1 {
				return ana, nil
			}
			return nil, nil
		},
	}
	tx := &MockTransactor{}
	pub := newMockAuditPublisher()

	service := NewTaskService(tx, mockTaskRepo, mockPersonRepo, pub, quietLogger(), clock)

	result, err := service.CreateTask(ctx, "  Buy milk ", ana, &due)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.ID != 7 {
		t.Errorf("Expected task ID 7, got %d", result.ID)
	}
	if result.Description != "Buy milk" {
		t.Errorf("Expected trimmed description, got %q", result.Description)
	}
	if result.Done {
		t.Error("Expected new task to be not done")
	}
	if !result.CreationDate.Equal(fixedNow) {
		t.Errorf("Expected creation date %v, got %v", fixedNow, result.CreationDate)
	}
	wantDue := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if result.DueDate == nil || !result.DueDate.Equal(wantDue) {
		t.Errorf("Expected due date %v, got %v", wantDue, result.DueDate)
	}
	if tx.Calls != 1 {
		t.Errorf("Expected 1 transaction, got %d", tx.Calls)
	}

	msg := waitAudit(t, pub)
	if msg.Action != entity.ActionCreate || msg.EntityType != entity.EntityTypeTask || msg.EntityID != 7 {
		t.Errorf("Unexpected audit message %+v", msg)
	}
	if msg.MessageID == "" {
		t.Error("Expected audit message id")
	}
}

func TestCreateTaskWithoutPersonOrDueDate(t *testing.T) {
	mockTaskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, task *entity.Task) (*entity.Task, error) {
			created := *task
			created.ID = 1
			return &created, nil
		},
	}
	mockPersonRepo := &MockPersonRepository{
		GetByIdFunc: func(ctx context.Context, id int64) (*entity.Person, error) {
			t.Fatal("person lookup not expected for unassigned task")
			return nil, nil
		},
	}

	service := NewTaskService(&MockTransactor{}, mockTaskRepo, mockPersonRepo, newMockAuditPublisher(), quietLogger(), clock)

	result, err := service.CreateTask(context.Background(), "Water plants", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Person != nil || result.DueDate != nil {
		t.Errorf("Expected no person and no due date, got %+v", result)
	}
}

func TestCreateTaskPersonNotFound(t *testing.T) {
	mockTaskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, task *entity.Task) (*entity.Task, error) {
			t.Fatal("Create must not be called")
			return nil, nil
		},
	}
	mockPersonRepo := &MockPersonRepository{}

	service := NewTaskService(&MockTransactor{}, mockTaskRepo, mockPersonRepo, newMockAuditPublisher(), quietLogger(), clock)

	result, err := service.CreateTask(context.Background(), "Buy milk", &entity.Person{ID: 999}, nil)
	if !errors.Is(err, entity.ErrPersonNotFound) {
		t.Errorf("Expected ErrPersonNotFound, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil task, got %v", result)
	}
}

func TestCreateTaskInvalidDescription(t *testing.T) {
	tx := &MockTransactor{}
	service := NewTaskService(tx, &MockTaskRepository{}, &MockPersonRepository{}, newMockAuditPublisher(), quietLogger(), clock)

	tests := []struct {
		name        string
		description string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too long", strings.Repeat("a", entity.TaskDescriptionMaxLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateTask(context.Background(), tt.description, nil, nil)
			if !errors.Is(err, entity.ErrInvalidTaskData) {
				t.Errorf("Expected ErrInvalidTaskData, got %v", err)
			}
		})
	}
	if tx.Calls != 0 {
		t.Errorf("Expected no transaction for invalid input, got %d", tx.Calls)
	}
}

func TestCreateTaskDescriptionAtMaxLength(t *testing.T) {
	mockTaskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, task *entity.Task) (*entity.Task, error) {
			return task, nil
		},
	}
	service := NewTaskService(&MockTransactor{}, mockTaskRepo, &MockPersonRepository{}, newMockAuditPublisher(), quietLogger(), clock)

	description := strings.Repeat("ñ", entity.TaskDescriptionMaxLength)
	if _, err := service.CreateTask(context.Background(), description, nil, nil); err != nil {
		t.Fatalf("Expected no error for %d characters, got %v", entity.TaskDescriptionMaxLength, err)
	}
}

func TestUpdateTaskKeepsCreationDate(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	oldTask := &entity.Task{
		ID:           1,
		Description:  "Old Description",
		CreationDate: created,
	}

	var written *entity.Task
	mockTaskRepo := &MockTaskRepository{
		GetByTaskIdFunc: func(ctx context.Context, id int64) (*entity.Task, error) {
			if id == 1 {
				copied := *oldTask
				return &copied, nil
			}
			return nil, nil
		},
		UpdateFunc: func(ctx context.Context, task *entity.Task) (*entity.Task, error) {
			copied := *task
			written = &copied
			return &copied, nil
		},
	}

	pub := newMockAuditPublisher()
	service := NewTaskService(&MockTransactor{}, mockTaskRepo, &MockPersonRepository{}, pub, quietLogger(), clock)

	req := &entity.Task{
		ID:           1,
		Description:  "New Description",
		Done:         true,
		CreationDate: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := service.UpdateTask(ctx, req); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !written.CreationDate.Equal(created) {
		t.Errorf("Expected creation date %v to be kept, got %v", created, written.CreationDate)
	}
	if !req.CreationDate.Equal(created) {
		t.Errorf("Expected caller task to carry stored creation date, got %v", req.CreationDate)
	}
	if !written.Done || written.Description != "New Description" {
		t.Errorf("Expected updated fields, got %+v", written)
	}

	msg := waitAudit(t, pub)
	if msg.Action != entity.ActionUpdate {
		t.Errorf("Expected update audit, got %s", msg.Action)
	}
	if _, ok := msg.Changes["done"]; !ok {
		t.Errorf("Expected done in changes, got %v", msg.Changes)
	}
	if _, ok := msg.Changes["creation_date"]; ok {
		t.Errorf("creation_date must not change, got %v", msg.Changes)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	mockTaskRepo := &MockTaskRepository{
		GetByTaskIdFunc: func(ctx context.Context, id int64) (*entity.Task, error) {
			return nil, nil
		},
	}
	service := NewTaskService(&MockTransactor{}, mockTaskRepo, &MockPersonRepository{}, newMockAuditPublisher(), quietLogger(), clock)

	err := service.UpdateTask(context.Background(), &entity.Task{ID: 999, Description: "New"})
	if !errors.Is(err, entity.ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestSetDone(t *testing.T) {
	mockTaskRepo := &MockTaskRepository{
		GetByTaskIdFunc: func(ctx context.Context, id int64) (*entity.Task, error) {
			return &entity.Task{ID: id, Description: "Buy milk", CreationDate: fixedNow}, nil
		},
		UpdateFunc: func(ctx context.Context, task *entity.Task) (*entity.Task, error) {
			copied := *task
			return &copied, nil
		},
	}
	tx := &MockTransactor{}
	service := NewTaskService(tx, mockTaskRepo, &MockPersonRepository{}, newMockAuditPublisher(), quietLogger(), clock)

	task, err := service.SetDone(context.Background(), 3, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !task.Done {
		t.Error("Expected task to be done")
	}
	if tx.Calls != 1 {
		t.Errorf("Expected load and update in one transaction, got %d", tx.Calls)
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	mockTaskRepo := &MockTaskRepository{
		DeleteFunc: func(ctx context.Context, id int64) error {
			t.Fatal("Delete must not be called")
			return nil
		},
	}
	service := NewTaskService(&MockTransactor{}, mockTaskRepo, &MockPersonRepository{}, newMockAuditPublisher(), quietLogger(), clock)

	if err := service.DeleteTask(context.Background(), 42); !errors.Is(err, entity.ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestFindByPerson(t *testing.T) {
	mockTaskRepo := &MockTaskRepository{
		ListByPersonFunc: func(ctx context.Context, personID int64) ([]entity.Task, error) {
			if personID != 5 {
				t.Errorf("Expected person 5, got %d", personID)
			}
			return []entity.Task{{ID: 1}, {ID: 2}}, nil
		},
		ListFunc: func(ctx context.Context, page entity.PageRequest) ([]entity.Task, error) {
			t.Fatal("paged listing must not be used for person filter")
			return nil, nil
		},
	}
	service := NewTaskService(&MockTransactor{}, mockTaskRepo, &MockPersonRepository{}, newMockAuditPublisher(), quietLogger(), clock)

	tasks, err := service.FindByPerson(context.Background(), &entity.Person{ID: 5})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("Expected 2 tasks, got %d", len(tasks))
	}

	if _, err := service.FindByPerson(context.Background(), nil); !errors.Is(err, entity.ErrInvalidTaskData) {
		t.Errorf("Expected ErrInvalidTaskData for nil person, got %v", err)
	}
}

func TestListNormalizesPage(t *testing.T) {
	mockTaskRepo := &MockTaskRepository{
		ListFunc: func(ctx context.Context, page entity.PageRequest) ([]entity.Task, error) {
			if page.Page != 0 || page.Size != entity.DefaultPageSize {
				t.Errorf("Expected normalised page, got %+v", page)
			}
			return nil, nil
		},
	}
	service := NewTaskService(&MockTransactor{}, mockTaskRepo, &MockPersonRepository{}, newMockAuditPublisher(), quietLogger(), clock)

	if _, err := service.List(context.Background(), entity.PageRequest{Page: -3}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestTransactionErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	service := NewTaskService(&MockTransactor{Err: boom}, &MockTaskRepository{}, &MockPersonRepository{}, newMockAuditPublisher(), quietLogger(), clock)

	if _, err := service.FindByID(context.Background(), 1); !errors.Is(err, boom) {
		t.Errorf("Expected transaction error, got %v", err)
	}
}
