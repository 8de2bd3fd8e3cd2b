package order

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/repository"
)

// CreateInput carries the validated-at-the-boundary fields for a new order.
type CreateInput struct {
	ClientName  string
	OrderCode   string
	ProjectName string
	Amount      decimal.Decimal
	Status      domain.Status
	MeetingTime string
}

type UseCase struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

func New(orders repository.OrderRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		orders: orders,
		logger: logger,
	}
}

// ListOrders returns all orders, newest first, with their tasks attached.
func (uc *UseCase) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return uc.orders.List(ctx, repository.OrderFilter{WithTasks: true})
}

// CreateOrder validates the input and persists a new order. Validation runs
// before any write; failures carry field-level detail.
func (uc *UseCase) CreateOrder(ctx context.Context, input CreateInput) (*domain.Order, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ClientName:  input.ClientName,
		OrderCode:   input.OrderCode,
		ProjectName: input.ProjectName,
		Amount:      input.Amount,
		Status:      input.Status,
		MeetingTime: input.MeetingTime,
	}

	created, err := uc.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("order_code", created.OrderCode))
	return created, nil
}

// DeleteOrder removes an order and, through the persistence cascade, all of
// its tasks.
func (uc *UseCase) DeleteOrder(ctx context.Context, id string) error {
	if err := uc.orders.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("order deleted", zap.String("order_id", id))
	return nil
}

func validateCreate(input CreateInput) error {
	fields := make(map[string]string)

	if input.ClientName == "" {
		fields["clientName"] = "Client name is required"
	}
	if input.OrderCode == "" {
		fields["orderId"] = "Order ID is required"
	}
	if input.ProjectName == "" {
		fields["projectName"] = "Project name is required"
	}
	if !input.Amount.IsPositive() {
		fields["amount"] = "Amount must be positive"
	}
	if !domain.ValidStatus(input.Status) {
		fields["status"] = "Status must be one of ACTIVE, WAITING, COMPLETED"
	}
	if input.MeetingTime != "" {
		if _, _, err := domain.ParseMeetingTime(input.MeetingTime); err != nil {
			fields["meetingTime"] = "Meeting time must be HH:MM (24-hour)"
		}
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
