package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/revtrack/backend/internal/infrastructure/monitor"
)

func TestHealthDegradedWithoutDependencies(t *testing.T) {
	mon := monitor.New(nil, nil, time.Second, nil)
	h := NewHealthHandler(mon, nil, nil)

	ctx := newRequestCtx(fasthttpMethodGet, "/health", nil)
	h.Check(ctx)

	require.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode())
}
