package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/api/http/handlers"
	"github.com/quantumhr/portal-service/internal/auth"
	"github.com/quantumhr/portal-service/internal/config"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	Organization   *handlers.OrganizationHandler
	Leave          *handlers.LeaveHandler
	Attendance     *handlers.AttendanceHandler
	Payroll        *handlers.PayrollHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
	Guard          *session.Guard
	SessionCfg     config.SessionConfig
}

// RegisterRoutes wires HTTP routes. The admin console and the self-service
// portal each sit behind the edge guard plus the session middleware; fine
// grained grant checks are attached per write operation.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	authenticated := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authenticated.Get("/me", cfg.Auth.Me)
	authenticated.Get("/permissions/:userID", cfg.Auth.Permissions)

	edge := EdgeGuard(cfg.Guard, cfg.SessionCfg)

	admin := app.Group("/admin", edge, cfg.AuthMiddleware.Handle, auth.RequireRole(domain.AdminRoles()...))

	admin.Get("/employees", cfg.Employees.List)
	admin.Get("/employees/:id", cfg.Employees.Get)
	admin.Post("/employees", auth.RequireGrant("employees", domain.ActionCreate), cfg.Employees.Create)
	admin.Put("/employees/:id", auth.RequireGrant("employees", domain.ActionUpdate), cfg.Employees.Update)
	admin.Delete("/employees/:id", auth.RequireGrant("employees", domain.ActionDelete), cfg.Employees.Delete)

	admin.Get("/organization/departments", cfg.Organization.ListDepartments)
	admin.Post("/organization/departments", auth.RequireGrant("organization", domain.ActionCreate), cfg.Organization.CreateDepartment)
	admin.Put("/organization/departments/:id", auth.RequireGrant("organization", domain.ActionUpdate), cfg.Organization.UpdateDepartment)
	admin.Delete("/organization/departments/:id", auth.RequireGrant("organization", domain.ActionDelete), cfg.Organization.DeleteDepartment)

	admin.Get("/leaves/pending", auth.RequireGrant("leaves", domain.ActionRead), cfg.Leave.Pending)
	admin.Post("/leaves/:id/approve", auth.RequireGrant("leaves", domain.ActionUpdate), cfg.Leave.Approve)
	admin.Post("/leaves/:id/reject", auth.RequireGrant("leaves", domain.ActionUpdate), cfg.Leave.Reject)

	admin.Get("/payroll/payslips", auth.RequireGrant("payroll", domain.ActionRead), cfg.Payroll.PeriodPayslips)
	admin.Get("/payroll/summary", auth.RequireGrant("payroll", domain.ActionRead), cfg.Payroll.PeriodSummary)

	admin.Get("/users", auth.RequireGrant("users", domain.ActionRead), cfg.Users.List)
	admin.Get("/users/:id", auth.RequireGrant("users", domain.ActionRead), cfg.Users.Get)
	admin.Post("/users", auth.RequireGrant("users", domain.ActionCreate), cfg.Users.Create)
	admin.Put("/users/:id", auth.RequireGrant("users", domain.ActionUpdate), cfg.Users.Update)
	admin.Put("/users/:id/permissions", auth.RequireGrant("users", domain.ActionUpdate), cfg.Users.ReplaceGrants)

	// Self-service admits any authenticated role.
	ess := app.Group("/ess", edge, cfg.AuthMiddleware.Handle, auth.RequireRole())

	ess.Get("/leaves", cfg.Leave.MyRequests)
	ess.Post("/leaves", cfg.Leave.Apply)
	ess.Post("/leaves/:id/cancel", cfg.Leave.Cancel)
	ess.Get("/leaves/balances", cfg.Leave.MyBalances)

	ess.Get("/attendance", cfg.Attendance.History)
	ess.Post("/attendance/check-in", cfg.Attendance.CheckIn)
	ess.Post("/attendance/check-out", cfg.Attendance.CheckOut)

	ess.Get("/payslips", cfg.Payroll.MyPayslips)
}
