package view

import (
	"context"

	"github.com/St1cky1/task-management/internal/entity"
)

type MockPeople struct {
	ListFunc     func(ctx context.Context, page entity.PageRequest) ([]entity.Person, error)
	CountFunc    func(ctx context.Context) (int64, error)
	FindByIDFunc func(ctx context.Context, id int64) (*entity.Person, error)
}

func (m *MockPeople) List(ctx context.Context, page entity.PageRequest) ([]entity.Person, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page)
	}
	return nil, nil
}

func (m *MockPeople) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockPeople) FindByID(ctx context.Context, id int64) (*entity.Person, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

type MockTasks struct {
	ListFunc         func(ctx context.Context, page entity.PageRequest) ([]entity.Task, error)
	CountFunc        func(ctx context.Context) (int64, error)
	FindByPersonFunc func(ctx context.Context, person *entity.Person) ([]entity.Task, error)
	FindByIDFunc     func(ctx context.Context, id int64) (*entity.Task, error)
}

func (m *MockTasks) List(ctx context.Context, page entity.PageRequest) ([]entity.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page)
	}
	return nil, nil
}

func (m *MockTasks) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockTasks) FindByPerson(ctx context.Context, person *entity.Person) ([]entity.Task, error) {
	if m.FindByPersonFunc != nil {
		return m.FindByPersonFunc(ctx, person)
	}
	return nil, nil
}

func (m *MockTasks) FindByID(ctx context.Context, id int64) (*entity.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func ana() *entity.Person {
	return &entity.Person{ID: 1, FirstName: "Ana", LastName: "Lopez", DNI: "123"}
}

func peopleByID(people ...*entity.Person) func(ctx context.Context, id int64) (*entity.Person, error) {
	return func(ctx context.Context, id int64) (*entity.Person, error) {
		for _, p := range people {
			if p.ID == id {
				return p, nil
			}
		}
		return nil, nil
	}
}
