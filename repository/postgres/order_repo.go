package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/repository"
)

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation of OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) repository.OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, client_name, order_code, project_name, amount::text, status, meeting_time, meeting_done_today, last_meeting_date, created_at, updated_at`

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanOrder(row)
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	query := `
	SELECT ` + orderColumns + `
	FROM orders
	WHERE ($1 = '' OR status = $1)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, string(filter.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if filter.WithTasks && len(orders) > 0 {
		if err := r.attachTasks(ctx, orders); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) attachTasks(ctx context.Context, orders []domain.Order) error {
	ids := make([]string, len(orders))
	index := make(map[string]*domain.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = &orders[i]
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE order_id = ANY($1) ORDER BY deadline ASC`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return err
		}
		if owner, ok := index[task.OrderID]; ok {
			owner.Tasks = append(owner.Tasks, *task)
		}
	}
	return rows.Err()
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrInvalidPayload
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO orders (id, client_name, order_code, project_name, amount, status, meeting_time, meeting_done_today, last_meeting_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		order.ID,
		order.ClientName,
		order.OrderCode,
		order.ProjectName,
		order.Amount.String(),
		string(order.Status),
		nullString(order.MeetingTime),
		order.MeetingDoneToday,
		order.LastMeetingDate,
	).Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE orders
	SET client_name = $2,
		order_code = $3,
		project_name = $4,
		amount = $5,
		status = $6,
		meeting_time = $7,
		meeting_done_today = $8,
		last_meeting_date = $9,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		order.ID,
		order.ClientName,
		order.OrderCode,
		order.ProjectName,
		order.Amount.String(),
		string(order.Status),
		nullString(order.MeetingTime),
		order.MeetingDoneToday,
		order.LastMeetingDate,
	).Scan(&order.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	return nil
}

func (r *orderRepository) UpdateMeeting(ctx context.Context, id string, doneToday bool, lastMeetingDate time.Time) error {
	const query = `
	UPDATE orders
	SET meeting_done_today = $2,
		last_meeting_date = $3,
		updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, doneToday, lastMeetingDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	// Tasks go with the order through the ON DELETE CASCADE rule, inside the
	// same implicit transaction.
	const query = `DELETE FROM orders WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Order, error) {
	var order domain.Order
	var (
		amount      string
		meetingTime *string
		lastMeeting *time.Time
	)

	if err := row.Scan(
		&order.ID,
		&order.ClientName,
		&order.OrderCode,
		&order.ProjectName,
		&amount,
		&order.Status,
		&meetingTime,
		&order.MeetingDoneToday,
		&lastMeeting,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	parsed, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	order.Amount = parsed
	if meetingTime != nil {
		order.MeetingTime = *meetingTime
	}
	order.LastMeetingDate = lastMeeting

	return &order, nil
}
