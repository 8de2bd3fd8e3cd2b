package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/revtrack/backend/api/transport"
	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/pkg/httpcontext"
	meetingUC "github.com/revtrack/backend/usecase/meeting"
)

type MeetingHandler struct {
	baseHandler
	uc *meetingUC.UseCase
}

func NewMeetingHandler(uc *meetingUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Mark today's meeting done or skipped
// @Tags meetings
// @Router /meetings [post]
func (h *MeetingHandler) ApplyAction(ctx *fasthttp.RequestCtx) {
	var req transport.MeetingActionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Apply(stdCtx, req.OrderID, domain.MeetingAction(req.Action)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.OK)
}
