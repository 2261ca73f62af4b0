package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PersonRepository struct {
	db *pgxpool.Pool
}

func NewPersonRepository(db *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{
		db: db,
	}
}

// создаем персону
func (r *PersonRepository) Create(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	query := `
	INSERT INTO person (first_name, last_name, dni)
	VALUES ($1, $2, $3)
	RETURNING id, first_name, last_name, dni
	`

	var created entity.Person
	err := conn(ctx, r.db).QueryRow(ctx, query,
		person.FirstName,
		person.LastName,
		person.DNI,
	).Scan(
		&created.ID,
		&created.FirstName,
		&created.LastName,
		&created.DNI,
	)
	if err != nil {
		return nil, mapPersonError(err)
	}

	return &created, nil
}

func (r *PersonRepository) GetById(ctx context.Context, id int64) (*entity.Person, error) {
	query := `
	SELECT id, first_name, last_name, dni
	FROM person
	WHERE id = $1
	`

	var person entity.Person
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&person.ID,
		&person.FirstName,
		&person.LastName,
		&person.DNI,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &person, nil
}

// Update - полное обновление персоны
func (r *PersonRepository) Update(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	query := `
	UPDATE person
	SET first_name = $1,
	    last_name = $2,
	    dni = $3
	WHERE id = $4
	RETURNING id, first_name, last_name, dni
	`

	var updated entity.Person
	err := conn(ctx, r.db).QueryRow(ctx, query,
		person.FirstName,
		person.LastName,
		person.DNI,
		person.ID,
	).Scan(
		&updated.ID,
		&updated.FirstName,
		&updated.LastName,
		&updated.DNI,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrPersonNotFound
		}
		return nil, mapPersonError(err)
	}

	return &updated, nil
}

func (r *PersonRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM person WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return entity.ErrPersonNotFound
	}
	return nil
}

// List - одна страница персон
func (r *PersonRepository) List(ctx context.Context, page entity.PageRequest) ([]entity.Person, error) {
	page = page.Normalize()
	query := `
	SELECT id, first_name, last_name, dni
	FROM person
	` + OrderBy(page.Sort, PersonSortColumns, "id") + `
	LIMIT $1 OFFSET $2
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]entity.Person, 0, page.Limit())
	for rows.Next() {
		var person entity.Person
		if err := rows.Scan(
			&person.ID,
			&person.FirstName,
			&person.LastName,
			&person.DNI,
		); err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	return people, rows.Err()
}

func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT count(*) FROM person`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func mapPersonError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return entity.ErrDuplicateDNI
	}
	return fmt.Errorf("person storage: %w", err)
}
