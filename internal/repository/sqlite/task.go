package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/St1cky1/task-management/internal/entity"
	"github.com/St1cky1/task-management/internal/repository"
)

const taskSelect = `SELECT t.id, t.description, t.due_date, t.creation_date, t.done,
	p.id, p.first_name, p.last_name, p.dni
	FROM task t
	LEFT JOIN person p ON p.id = t.person_id `

type TaskRepository struct {
	store *Store
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	res, err := r.store.conn(ctx).ExecContext(ctx,
		`INSERT INTO task (description, person_id, due_date, creation_date, done) VALUES (?, ?, ?, ?, ?)`,
		task.Description,
		task.PersonID(),
		formatDate(task.DueDate),
		toMillis(task.CreationDate),
		task.Done,
	)
	if err != nil {
		return nil, mapTaskError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("task storage: %w", err)
	}
	return r.mustGet(ctx, id)
}

func (r *TaskRepository) GetByTaskId(ctx context.Context, id int64) (*entity.Task, error) {
	task, err := scanTask(r.store.conn(ctx).QueryRowContext(ctx, taskSelect+`WHERE t.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// Update writes every mutable column; creation_date is left alone.
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	res, err := r.store.conn(ctx).ExecContext(ctx,
		`UPDATE task SET description = ?, person_id = ?, due_date = ?, done = ? WHERE id = ?`,
		task.Description,
		task.PersonID(),
		formatDate(task.DueDate),
		task.Done,
		task.ID,
	)
	if err != nil {
		return nil, mapTaskError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, entity.ErrTaskNotFound
	}
	return r.mustGet(ctx, task.ID)
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.store.conn(ctx).ExecContext(ctx, `DELETE FROM task WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context, page entity.PageRequest) ([]entity.Task, error) {
	page = page.Normalize()
	query := taskSelect + repository.OrderBy(page.Sort, repository.TaskSortColumns, "t.id") + ` LIMIT ? OFFSET ?`

	rows, err := r.store.conn(ctx).QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.store.conn(ctx).QueryRowContext(ctx, `SELECT count(*) FROM task`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *TaskRepository) ListByPerson(ctx context.Context, personID int64) ([]entity.Task, error) {
	rows, err := r.store.conn(ctx).QueryContext(ctx, taskSelect+`WHERE t.person_id = ? ORDER BY t.id ASC`, personID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) UnassignPerson(ctx context.Context, personID int64) (int64, error) {
	res, err := r.store.conn(ctx).ExecContext(ctx, `UPDATE task SET person_id = NULL WHERE person_id = ?`, personID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
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

type rowScanner interface {
	Scan(dest ...any) error
}

func collectTasks(rows *sql.Rows) ([]entity.Task, error) {
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

func scanTask(row rowScanner) (*entity.Task, error) {
	var (
		task                     entity.Task
		dueDate                  sql.NullString
		creationDate             int64
		personID                 sql.NullInt64
		firstName, lastName, dni sql.NullString
	)
	if err := row.Scan(
		&task.ID,
		&task.Description,
		&dueDate,
		&creationDate,
		&task.Done,
		&personID,
		&firstName,
		&lastName,
		&dni,
	); err != nil {
		return nil, err
	}

	due, err := parseDate(dueDate)
	if err != nil {
		return nil, err
	}
	task.DueDate = due
	task.CreationDate = fromMillis(creationDate)
	if personID.Valid {
		task.Person = &entity.Person{
			ID:        personID.Int64,
			FirstName: firstName.String,
			LastName:  lastName.String,
			DNI:       dni.String,
		}
	}
	return &task, nil
}

func mapTaskError(err error) error {
	if isForeignKeyViolation(err) {
		return entity.ErrPersonNotFound
	}
	return fmt.Errorf("task storage: %w", err)
}

var _ repository.ITaskRepository = (*TaskRepository)(nil)
