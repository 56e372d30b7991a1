package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/api/dto"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/service"
)

// OrganizationHandler exposes department management.
type OrganizationHandler struct {
	employees *service.EmployeeService
}

// NewOrganizationHandler constructs handler.
func NewOrganizationHandler(employees *service.EmployeeService) *OrganizationHandler {
	return &OrganizationHandler{employees: employees}
}

// ListDepartments handles GET /admin/organization/departments.
func (h *OrganizationHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.employees.ListDepartments(c.Context())
	if err != nil {
		return err
	}
	out := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		out = append(out, dto.NewDepartmentResponse(department))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateDepartment handles POST /admin/organization/departments.
func (h *OrganizationHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	department := &domain.Department{Name: req.Name, Code: req.Code, ManagerID: req.ManagerID}
	if err := h.employees.CreateDepartment(c.Context(), department); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDepartmentResponse(*department)})
}

// UpdateDepartment handles PUT /admin/organization/departments/:id.
func (h *OrganizationHandler) UpdateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	department := &domain.Department{
		ID:        c.Params("id"),
		Name:      req.Name,
		Code:      req.Code,
		ManagerID: req.ManagerID,
	}
	if err := h.employees.UpdateDepartment(c.Context(), department); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(*department)})
}

// DeleteDepartment handles DELETE /admin/organization/departments/:id.
func (h *OrganizationHandler) DeleteDepartment(c *fiber.Ctx) error {
	if err := h.employees.DeleteDepartment(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
