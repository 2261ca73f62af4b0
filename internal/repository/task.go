package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskSelect = `
	SELECT t.id, t.description, t.due_date, t.creation_date, t.done,
	       p.id, p.first_name, p.last_name, p.dni
	FROM task t
	LEFT JOIN person p ON p.id = t.person_id
	`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
	INSERT INTO task (description, person_id, due_date, creation_date, done)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`

	var id int64
	err := conn(ctx, r.db).QueryRow(ctx, query,
		task.Description,
		task.PersonID(),
		task.DueDate,
		task.CreationDate,
		task.Done,
	).Scan(&id)
	if err != nil {
		return nil, mapTaskError(err)
	}

	return r.mustGet(ctx, id)
}

func (r *TaskRepository) GetByTaskId(ctx context.Context, id int64) (*entity.Task, error) {
	task, err := scanTask(conn(ctx, r.db).QueryRow(ctx, taskSelect+`WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// Update - полное обновление задачи, creation_date не трогаем
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
	UPDATE task
	SET description = $1,
	    person_id = $2,
	    due_date = $3,
	    done = $4
	WHERE id = $5
	`

	result, err := conn(ctx, r.db).Exec(ctx, query,
		task.Description,
		task.PersonID(),
		task.DueDate,
		task.Done,
		task.ID,
	)
	if err != nil {
		return nil, mapTaskError(err)
	}
	if result.RowsAffected() == 0 {
		return nil, entity.ErrTaskNotFound
	}

	return r.mustGet(ctx, task.ID)
}

// Delete - удаление задачи
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM task WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

// List - одна страница задач
func (r *TaskRepository) List(ctx context.Context, page entity.PageRequest) ([]entity.Task, error) {
	page = page.Normalize()
	query := taskSelect + OrderBy(page.Sort, TaskSortColumns, "t.id") + `
	LIMIT $1 OFFSET $2`

	rows, err := conn(ctx, r.db).Query(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT count(*) FROM task`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ListByPerson - все задачи персоны, без пагинации
func (r *TaskRepository) ListByPerson(ctx context.Context, personID int64) ([]entity.Task, error) {
	rows, err := conn(ctx, r.db).Query(ctx, taskSelect+`WHERE t.person_id = $1 ORDER BY t.id ASC`, personID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// UnassignPerson clears the owner of every task held by personID.
func (r *TaskRepository) UnassignPerson(ctx context.Context, personID int64) (int64, error) {
	result, err := conn(ctx, r.db).Exec(ctx, `UPDATE task SET person_id = NULL WHERE person_id = $1`, personID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *TaskRepository) mustGet(ctx context.Context, id int64) (*entity.Task, error) {
	task, err := r.GetByTaskId(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

func collectTasks(rows pgx.Rows) ([]entity.Task, error) {
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var (
		task                     entity.Task
		dueDate                  *time.Time
		personID                 *int64
		firstName, lastName, dni *string
	)
	if err := row.Scan(
		&task.ID,
		&task.Description,
		&dueDate,
		&task.CreationDate,
		&task.Done,
		&personID,
		&firstName,
		&lastName,
		&dni,
	); err != nil {
		return nil, err
	}
	task.DueDate = entity.DateOnlyPtr(dueDate)
	task.CreationDate = task.CreationDate.UTC()
	if personID != nil {
		task.Person = &entity.Person{
			ID:        *personID,
			FirstName: deref(firstName),
			LastName:  deref(lastName),
			DNI:       deref(dni),
		}
	}
	return &task, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapTaskError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return entity.ErrPersonNotFound
	}
	return fmt.Errorf("task storage: %w", err)
}
