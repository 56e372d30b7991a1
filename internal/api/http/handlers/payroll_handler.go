package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/api/dto"
	"github.com/quantumhr/portal-service/internal/service"
)

// PayrollHandler exposes payslips for employees and period views for admins.
type PayrollHandler struct {
	payroll *service.PayrollService
}

// NewPayrollHandler constructs handler.
func NewPayrollHandler(payroll *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll}
}

// MyPayslips handles GET /ess/payslips.
func (h *PayrollHandler) MyPayslips(c *fiber.Ctx) error {
	_, employeeID, err := requireEmployee(c)
	if err != nil {
		return err
	}
	payslips, err := h.payroll.PayslipsForEmployee(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPayslipResponses(payslips)})
}

// PeriodPayslips handles GET /admin/payroll/payslips.
func (h *PayrollHandler) PeriodPayslips(c *fiber.Ctx) error {
	year, month, err := periodQuery(c)
	if err != nil {
		return err
	}
	payslips, err := h.payroll.PayslipsForPeriod(c.Context(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPayslipResponses(payslips)})
}

// PeriodSummary handles GET /admin/payroll/summary.
func (h *PayrollHandler) PeriodSummary(c *fiber.Ctx) error {
	year, month, err := periodQuery(c)
	if err != nil {
		return err
	}
	summary, err := h.payroll.Summary(c.Context(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

func periodQuery(c *fiber.Ctx) (int, int, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if q := c.Query("year"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			return 0, 0, fiber.NewError(http.StatusBadRequest, "year must be numeric")
		}
		year = parsed
	}
	if q := c.Query("month"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			return 0, 0, fiber.NewError(http.StatusBadRequest, "month must be numeric")
		}
		month = parsed
	}
	return year, month, nil
}
