package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revtrack/backend/api/transport"
	"github.com/revtrack/backend/domain"
	taskUC "github.com/revtrack/backend/usecase/task"
)

func newTaskHandler(repo *fakeTaskRepo) *TaskHandler {
	return NewTaskHandler(taskUC.New(repo, nil), nil, nil)
}

func TestListTasksComputesUrgency(t *testing.T) {
	repo := newFakeTaskRepo(nil)
	now := time.Now()
	repo.tasks["task-1"] = &domain.Task{ID: "task-1", Description: "call client", Deadline: now.Add(2 * time.Hour)}
	repo.tasks["task-2"] = &domain.Task{ID: "task-2", Description: "send invoice", Deadline: now.Add(73 * time.Hour)}
	h := newTaskHandler(repo)

	ctx := newRequestCtx(fasthttpMethodGet, "/tasks", nil)
	h.ListTasks(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var envelope transport.TasksEnvelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	require.Len(t, envelope.Tasks, 2)

	// soonest deadline first
	assert.Equal(t, "task-1", envelope.Tasks[0].ID)
	assert.True(t, envelope.Tasks[0].IsUrgent)
	assert.False(t, envelope.Tasks[1].IsUrgent)
	assert.Equal(t, "3 days", envelope.Tasks[1].TimeRemaining)
}

func TestListTasksSkipsCompleted(t *testing.T) {
	repo := newFakeTaskRepo(nil)
	now := time.Now()
	repo.tasks["task-1"] = &domain.Task{ID: "task-1", Deadline: now.Add(time.Hour), Completed: true}
	repo.tasks["task-2"] = &domain.Task{ID: "task-2", Deadline: now.Add(time.Hour)}
	h := newTaskHandler(repo)

	ctx := newRequestCtx(fasthttpMethodGet, "/tasks", nil)
	h.ListTasks(ctx)

	var envelope transport.TasksEnvelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	require.Len(t, envelope.Tasks, 1)
	assert.Equal(t, "task-2", envelope.Tasks[0].ID)
}

func TestCreateTaskUnknownOrderRejected(t *testing.T) {
	orders := newFakeOrderRepo()
	repo := newFakeTaskRepo(orders)
	h := newTaskHandler(repo)

	body := []byte(`{"description":"prepare demo","deadline":"2026-09-01T10:00:00Z","orderId":"nope"}`)
	ctx := newRequestCtx(fasthttpMethodPost, "/tasks", body)
	h.CreateTask(ctx)

	require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())

	var resp transport.ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, string(domain.ErrCodeValidation), resp.Code)
	assert.Contains(t, resp.Details, "orderId")
	assert.Empty(t, repo.tasks)
}

func TestCreateTaskBadDeadline(t *testing.T) {
	h := newTaskHandler(newFakeTaskRepo(nil))

	body := []byte(`{"description":"prepare demo","deadline":"tomorrow"}`)
	ctx := newRequestCtx(fasthttpMethodPost, "/tasks", body)
	h.CreateTask(ctx)

	require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())

	var resp transport.ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Contains(t, resp.Details, "deadline")
}

func TestUpdateTaskCompleteStampsCompletedAt(t *testing.T) {
	repo := newFakeTaskRepo(nil)
	repo.tasks["task-1"] = &domain.Task{ID: "task-1", Description: "d", Deadline: time.Now().Add(time.Hour)}
	h := newTaskHandler(repo)

	ctx := newRequestCtx(fasthttpMethodPatch, "/tasks/task-1", []byte(`{"completed":true}`))
	ctx.SetUserValue("id", "task-1")
	h.UpdateTask(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var envelope transport.TaskEnvelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	assert.True(t, envelope.Task.Completed)
	require.NotNil(t, envelope.Task.CompletedAt)

	// un-completing clears the stamp
	ctx = newRequestCtx(fasthttpMethodPatch, "/tasks/task-1", []byte(`{"completed":false}`))
	ctx.SetUserValue("id", "task-1")
	h.UpdateTask(ctx)

	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	assert.False(t, envelope.Task.Completed)
	assert.Nil(t, envelope.Task.CompletedAt)
}

func TestUpdateTaskUnknown(t *testing.T) {
	h := newTaskHandler(newFakeTaskRepo(nil))

	ctx := newRequestCtx(fasthttpMethodPatch, "/tasks/missing", []byte(`{"completed":true}`))
	ctx.SetUserValue("id", "missing")
	h.UpdateTask(ctx)

	require.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}

func TestDeleteTaskLeavesOrders(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.orders["order-1"] = &domain.Order{ID: "order-1", Status: domain.StatusActive}
	repo := newFakeTaskRepo(orders)
	repo.tasks["task-1"] = &domain.Task{ID: "task-1", OrderID: "order-1", Deadline: time.Now()}
	h := newTaskHandler(repo)

	ctx := newRequestCtx(fasthttpMethodDelete, "/tasks/task-1", nil)
	ctx.SetUserValue("id", "task-1")
	h.DeleteTask(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Empty(t, repo.tasks)
	assert.Len(t, orders.orders, 1)
}
