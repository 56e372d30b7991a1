package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/api/dto"
	"github.com/quantumhr/portal-service/internal/service"
)

const defaultAttendanceHistory = 31

// AttendanceHandler exposes self-service check-in and check-out.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// CheckIn handles POST /ess/attendance/check-in.
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	_, employeeID, err := requireEmployee(c)
	if err != nil {
		return err
	}
	record, err := h.attendance.CheckIn(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAttendanceResponse(*record)})
}

// CheckOut handles POST /ess/attendance/check-out.
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	_, employeeID, err := requireEmployee(c)
	if err != nil {
		return err
	}
	record, err := h.attendance.CheckOut(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAttendanceResponse(*record)})
}

// History handles GET /ess/attendance.
func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	_, employeeID, err := requireEmployee(c)
	if err != nil {
		return err
	}

	limit := defaultAttendanceHistory
	if q := c.Query("limit"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed <= 0 {
			return fiber.NewError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	records, err := h.attendance.History(c.Context(), employeeID, limit)
	if err != nil {
		return err
	}
	out := make([]dto.AttendanceResponse, 0, len(records))
	for _, record := range records {
		out = append(out, dto.NewAttendanceResponse(record))
	}
	return c.JSON(fiber.Map{"data": out})
}
