package meeting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/repository"
)

type UseCase struct {
	orders repository.OrderRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(orders repository.OrderRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		orders: orders,
		logger: logger,
		now:    time.Now,
	}
}

// Apply records the user's decision about today's meeting instance. It is an
// idempotent overwrite, not a toggle: the last meeting date becomes today
// regardless of action, and the done flag is set only for mark_done.
func (uc *UseCase) Apply(ctx context.Context, orderID string, action domain.MeetingAction) error {
	if orderID == "" || !domain.ValidMeetingAction(action) {
		fields := make(map[string]string)
		if orderID == "" {
			fields["orderId"] = "Order ID is required"
		}
		if !domain.ValidMeetingAction(action) {
			fields["action"] = "Action must be mark_done or skip"
		}
		return domain.NewValidationError(fields)
	}

	if _, err := uc.orders.GetByID(ctx, orderID); err != nil {
		return err
	}

	done := action == domain.MeetingMarkDone
	if err := uc.orders.UpdateMeeting(ctx, orderID, done, uc.now()); err != nil {
		return err
	}

	uc.logger.Info("meeting action applied",
		zap.String("order_id", orderID),
		zap.String("action", string(action)))
	return nil
}

// Status evaluates the order's meeting against the current instant.
func (uc *UseCase) Status(ctx context.Context, orderID string) (domain.MeetingStatus, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	return domain.EvaluateMeeting(order, uc.now()), nil
}
