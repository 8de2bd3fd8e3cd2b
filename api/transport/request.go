package transport

import "encoding/json"

type CreateOrderRequest struct {
	ClientName  string      `json:"clientName"`
	OrderID     string      `json:"orderId"`
	ProjectName string      `json:"projectName"`
	Amount      json.Number `json:"amount"`
	Status      string      `json:"status"`
	MeetingTime string      `json:"meetingTime"`
}

type CreateTaskRequest struct {
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	OrderID     string `json:"orderId"`
}

type UpdateTaskRequest struct {
	Completed   *bool   `json:"completed"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
}

type MeetingActionRequest struct {
	OrderID string `json:"orderId"`
	Action  string `json:"action"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	TTLSeconds int    `json:"ttlSeconds"`
}

type RefreshRequest struct {
	SessionID  string `json:"sessionId"`
	TTLSeconds int    `json:"ttlSeconds"`
}

type LogoutRequest struct {
	SessionID string `json:"sessionId"`
}
