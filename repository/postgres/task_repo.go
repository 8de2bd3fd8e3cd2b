package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, description, deadline, completed, completed_at, COALESCE(order_id, ''), created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1::boolean IS NULL OR completed = $1)
	ORDER BY deadline ASC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, filter.Completed, clampLimit(filter.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if filter.WithOrder {
		if err := r.attachOrders(ctx, tasks); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (r *taskRepository) attachOrders(ctx context.Context, tasks []domain.Task) error {
	var ids []string
	seen := make(map[string]bool)
	for i := range tasks {
		if id := tasks[i].OrderID; id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	orders := make(map[string]*domain.Order, len(ids))
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return err
		}
		orders[order.ID] = order
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range tasks {
		if order, ok := orders[tasks[i].OrderID]; ok {
			tasks[i].Order = order
		}
	}
	return nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, description, deadline, completed, order_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Description,
		task.Deadline,
		task.Completed,
		nullString(task.OrderID),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewValidationError(map[string]string{
				"orderId": "referenced order does not exist",
			})
		}
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, id string, patch repository.TaskPatch) (*domain.Task, error) {
	// completed drives completed_at: setting it true stamps the timestamp
	// (again, on a repeat completion), setting it false clears it, leaving it
	// unset touches neither.
	query := `
	UPDATE tasks
	SET description = COALESCE($2, description),
		deadline = COALESCE($3, deadline),
		completed = COALESCE($4, completed),
		completed_at = CASE
			WHEN $4 IS NULL THEN completed_at
			WHEN $4 THEN $5::timestamptz
			ELSE NULL
		END,
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query,
		id,
		patch.Description,
		patch.Deadline,
		patch.Completed,
		patch.CompletedAt,
	)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task

	if err := row.Scan(
		&task.ID,
		&task.Description,
		&task.Deadline,
		&task.Completed,
		&task.CompletedAt,
		&task.OrderID,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	return &task, nil
}
