package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/revtrack/backend/api/transport"
	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondValidation(ctx *fasthttp.RequestCtx, fields map[string]string) {
	h.respondJSON(ctx, http.StatusBadRequest,
		transport.NewError(string(domain.ErrCodeValidation), "Invalid data", fields))
}

// respondError maps a domain error onto the wire. Persistence failures are
// logged with full detail and surfaced as a generic internal error.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeValidation):
		h.respondJSON(ctx, http.StatusBadRequest,
			transport.NewError(string(domain.ErrCodeValidation), "Invalid data", domain.ValidationFields(err)))
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		h.respondJSON(ctx, http.StatusNotFound,
			transport.NewError(string(domain.ErrCodeNotFound), err.Error(), nil))
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		h.respondJSON(ctx, http.StatusUnauthorized,
			transport.NewError(string(domain.ErrCodeUnauthorized), "Invalid credentials", nil))
	default:
		h.logger.Error("request failed", zap.String("path", string(ctx.Path())), zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError,
			transport.NewError(string(domain.ErrCodeInternal), "Internal server error", nil))
	}
}

func pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}
