package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/revtrack/backend/api/transport"
	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/pkg/httpcontext"
	orderUC "github.com/revtrack/backend/usecase/order"
)

type OrderHandler struct {
	baseHandler
	uc *orderUC.UseCase
}

func NewOrderHandler(uc *orderUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List orders with tasks and meeting status
// @Tags orders
// @Router /orders [get]
func (h *OrderHandler) ListOrders(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	orders, err := h.uc.ListOrders(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.OrdersEnvelope{
		Orders: transport.NewOrderViews(orders, time.Now()),
	})
}

// @Summary Create order
// @Tags orders
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(ctx *fasthttp.RequestCtx) {
	var req transport.CreateOrderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.respondValidation(ctx, map[string]string{"amount": "Amount must be a decimal number"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateOrder(stdCtx, orderUC.CreateInput{
		ClientName:  req.ClientName,
		OrderCode:   req.OrderID,
		ProjectName: req.ProjectName,
		Amount:      amount,
		Status:      domain.Status(req.Status),
		MeetingTime: req.MeetingTime,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.OrderEnvelope{
		Order: transport.NewOrderView(*created, time.Now()),
	})
}

// @Summary Delete order and its tasks
// @Tags orders
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(ctx *fasthttp.RequestCtx) {
	id := pathID(ctx)
	if id == "" {
		h.respondValidation(ctx, map[string]string{"id": "Order id is required"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteOrder(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.OK)
}

func parseAmount(raw json.Number) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw.String())
}
