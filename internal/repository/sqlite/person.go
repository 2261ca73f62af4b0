package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/repository"
)

type PersonRepository struct {
	store *Store
}

func (r *PersonRepository) Create(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	res, err := r.store.conn(ctx).ExecContext(ctx,
		`INSERT INTO person (first_name, last_name, dni) VALUES (?, ?, ?)`,
		person.FirstName,
		person.LastName,
		person.DNI,
	)
	if err != nil {
		return nil, mapPersonError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("person storage: %w", err)
	}

	created := *person
	created.ID = id
	return &created, nil
}

func (r *PersonRepository) GetById(ctx context.Context, id int64) (*entity.Person, error) {
	var person entity.Person
	err := r.store.conn(ctx).QueryRowContext(ctx,
		`SELECT id, first_name, last_name, dni FROM person WHERE id = ?`, id,
	).Scan(&person.ID, &person.FirstName, &person.LastName, &person.DNI)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *PersonRepository) Update(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	res, err := r.store.conn(ctx).ExecContext(ctx,
		`UPDATE person SET first_name = ?, last_name = ?, dni = ? WHERE id = ?`,
		person.FirstName,
		person.LastName,
		person.DNI,
		person.ID,
	)
	if err != nil {
		return nil, mapPersonError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, entity.ErrPersonNotFound
	}

	updated := *person
	return &updated, nil
}

func (r *PersonRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.store.conn(ctx).ExecContext(ctx, `DELETE FROM person WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrPersonNotFound
	}
	return nil
}

func (r *PersonRepository) List(ctx context.Context, page entity.PageRequest) ([]entity.Person, error) {
	page = page.Normalize()
	query := `SELECT id, first_name, last_name, dni FROM person ` +
		repository.OrderBy(page.Sort, repository.PersonSortColumns, "id") +
		` LIMIT ? OFFSET ?`

	rows, err := r.store.conn(ctx).QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]entity.Person, 0, page.Limit())
	for rows.Next() {
		var person entity.Person
		if err := rows.Scan(&person.ID, &person.FirstName, &person.LastName, &person.DNI); err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	return people, rows.Err()
}

func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.store.conn(ctx).QueryRowContext(ctx, `SELECT count(*) FROM person`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func mapPersonError(err error) error {
	if isUniqueViolation(err) {
		return entity.ErrDuplicateDNI
	}
	return fmt.Errorf("person storage: %w", err)
}

var _ repository.IPersonRepository = (*PersonRepository)(nil)
