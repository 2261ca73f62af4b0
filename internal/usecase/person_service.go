package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// PersonService mediates every person operation. Each public method runs in
// its own new transaction.
type PersonService struct {
	tx         repository.Transactor
	personRepo repository.IPersonRepository
	taskRepo   repository.ITaskRepository
	audit      *auditor
	validate   *validator.Validate
}

func NewPersonService(
	tx repository.Transactor,
	personRepo repository.IPersonRepository,
	taskRepo repository.ITaskRepository,
	publisher AuditPublisher,
	log logrus.FieldLogger,
) *PersonService {
	return &PersonService{
		tx:         tx,
		personRepo: personRepo,
		taskRepo:   taskRepo,
		audit:      newAuditor(publisher, log, time.Now),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *PersonService) CreatePerson(ctx context.Context, firstName, lastName, dni string) (*entity.Person, error) {
	person := entity.CreatePersonRequest{FirstName: firstName, LastName: lastName, DNI: dni}.Person()
	if err := s.validate.Struct(person); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidPersonData, err)
	}

	var created *entity.Person
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.personRepo.Create(ctx, person)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(entity.ActionCreate, entity.EntityTypePerson, created.ID, nil, personValues(created))
	return created, nil
}

// UpdatePerson persists the full state of an existing person.
func (s *PersonService) UpdatePerson(ctx context.Context, person *entity.Person) error {
	if person == nil {
		return entity.ErrInvalidPersonData
	}
	if err := s.validate.Struct(person); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidPersonData, err)
	}

	var oldPerson, updated *entity.Person
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		oldPerson, err = s.personRepo.GetById(ctx, person.ID)
		if err != nil {
			return err
		}
		if oldPerson == nil {
			return entity.ErrPersonNotFound
		}
		updated, err = s.personRepo.Update(ctx, person)
		return err
	})
	if err != nil {
		return err
	}

	s.audit.record(entity.ActionUpdate, entity.EntityTypePerson, updated.ID, personValues(oldPerson), personValues(updated))
	return nil
}

// DeletePerson removes the person and leaves their tasks unassigned.
func (s *PersonService) DeletePerson(ctx context.Context, id int64) error {
	var (
		person     *entity.Person
		unassigned int64
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		person, err = s.personRepo.GetById(ctx, id)
		if err != nil {
			return err
		}
		if person == nil {
			return entity.ErrPersonNotFound
		}
		if unassigned, err = s.taskRepo.UnassignPerson(ctx, id); err != nil {
			return err
		}
		return s.personRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	old := personValues(person)
	old["unassigned_tasks"] = unassigned
	s.audit.record(entity.ActionDelete, entity.EntityTypePerson, id, old, nil)
	return nil
}

// List returns one materialised page of people.
func (s *PersonService) List(ctx context.Context, page entity.PageRequest) ([]entity.Person, error) {
	var people []entity.Person
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		people, err = s.personRepo.List(ctx, page.Normalize())
		return err
	})
	return people, err
}

func (s *PersonService) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		total, err = s.personRepo.Count(ctx)
		return err
	})
	return total, err
}

// FindByID returns nil, nil when no person has the id.
func (s *PersonService) FindByID(ctx context.Context, id int64) (*entity.Person, error) {
	var person *entity.Person
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		person, err = s.personRepo.GetById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return person, nil
}
