package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/revtrack/backend/api/handler"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Order     *apiHandler.OrderHandler
	Task      *apiHandler.TaskHandler
	Meeting   *apiHandler.MeetingHandler
	Dashboard *apiHandler.DashboardHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/auth/login", handlers.Auth.Login)
	r.POST("/auth/refresh", handlers.Auth.Refresh)
	r.POST("/auth/logout", authMiddleware(handlers.Auth.Logout))

	// Every mutating route runs behind the authenticated session.
	r.GET("/orders", authMiddleware(handlers.Order.ListOrders))
	r.POST("/orders", authMiddleware(handlers.Order.CreateOrder))
	r.DELETE("/orders/{id}", authMiddleware(handlers.Order.DeleteOrder))

	r.GET("/tasks", authMiddleware(handlers.Task.ListTasks))
	r.POST("/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PATCH("/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.POST("/meetings", authMiddleware(handlers.Meeting.ApplyAction))

	r.GET("/dashboard", authMiddleware(handlers.Dashboard.GetDashboard))

	return r
}
