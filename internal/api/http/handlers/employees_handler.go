package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/api/dto"
	"github.com/quantumhr/portal-service/internal/auth"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/service"
	"github.com/quantumhr/portal-service/internal/session"
)

// EmployeesHandler exposes employee record management.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// List handles GET /admin/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.employees.ListEmployees(c.Context(), c.Query("department_id"))
	if err != nil {
		return err
	}

	includeSalary := h.viewerSeesSalary(c)
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		out = append(out, dto.NewEmployeeResponse(employee, includeSalary))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /admin/employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	employee, err := h.employees.GetEmployee(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(*employee, h.viewerSeesSalary(c))})
}

// Create handles POST /admin/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	employee, err := parseEmployeeRequest(c)
	if err != nil {
		return err
	}
	if err := h.employees.CreateEmployee(c.Context(), employee); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(*employee, true)})
}

// Update handles PUT /admin/employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	employee, err := parseEmployeeRequest(c)
	if err != nil {
		return err
	}
	employee.ID = c.Params("id")
	if err := h.employees.UpdateEmployee(c.Context(), employee); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(*employee, true)})
}

// Delete handles DELETE /admin/employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if err := h.employees.DeleteEmployee(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// viewerSeesSalary applies the render-time gate: salary detail is only shown
// to admin roles that also hold a payroll read grant.
func (h *EmployeesHandler) viewerSeesSalary(c *fiber.Ctx) bool {
	sc, ok := auth.SessionFromContext(c)
	if !ok {
		return false
	}
	_ = sc.Oracle.Ensure(c.UserContext())
	return session.ShouldRender(sc.Store.Snapshot(), session.Constraints{
		AllowedRoles: []domain.Role{domain.RoleSuperAdmin, domain.RoleHRAdmin, domain.RolePayrollAdmin},
		Resource:     "payroll",
		Action:       domain.ActionRead,
	})
}

func parseEmployeeRequest(c *fiber.Ctx) (*domain.Employee, error) {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	joined, err := time.Parse("2006-01-02", req.DateOfJoining)
	if err != nil && req.DateOfJoining != "" {
		return nil, fiber.NewError(http.StatusBadRequest, "date_of_joining must be YYYY-MM-DD")
	}

	return &domain.Employee{
		EmployeeNumber: req.EmployeeNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		DepartmentID:   req.DepartmentID,
		PositionTitle:  req.PositionTitle,
		ManagerID:      req.ManagerID,
		DateOfJoining:  joined,
		EmploymentType: domain.EmploymentType(req.EmploymentType),
		Status:         domain.EmployeeStatus(req.Status),
		BasicSalary:    req.BasicSalary,
		Currency:       req.Currency,
	}, nil
}
