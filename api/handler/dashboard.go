package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/revtrack/backend/api/transport"
	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/pkg/httpcontext"
	dashboardUC "github.com/revtrack/backend/usecase/dashboard"
)

type DashboardHandler struct {
	baseHandler
	uc *dashboardUC.UseCase
}

func NewDashboardHandler(uc *dashboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

type dashboardResponse struct {
	Orders []transport.OrderView `json:"orders"`
	Tasks  []transport.TaskView  `json:"tasks"`
	Stats  domain.DashboardStats `json:"stats"`
}

// @Summary Dashboard view with aggregate statistics
// @Tags dashboard
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.Load(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	now := time.Now()
	h.respondJSON(ctx, http.StatusOK, dashboardResponse{
		Orders: transport.NewOrderViews(view.Orders, now),
		Tasks:  transport.NewTaskViews(view.Tasks, now),
		Stats:  view.Stats,
	})
}
