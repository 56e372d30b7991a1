package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quantumhr/portal-service/internal/api/dto"
	"github.com/quantumhr/portal-service/internal/auth"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/service"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

// LeaveHandler exposes self-service leave requests and admin decisions.
type LeaveHandler struct {
	leaves *service.LeaveService
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(leaves *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// MyRequests handles GET /ess/leaves.
func (h *LeaveHandler) MyRequests(c *fiber.Ctx) error {
	_, employeeID, err := requireEmployee(c)
	if err != nil {
		return err
	}
	requests, err := h.leaves.ListForEmployee(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponses(requests)})
}

// Apply handles POST /ess/leaves.
func (h *LeaveHandler) Apply(c *fiber.Ctx) error {
	identity, employeeID, err := requireEmployee(c)
	if err != nil {
		return err
	}

	var req dto.LeaveApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}

	request := &domain.LeaveRequest{
		EmployeeID:  employeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
	}
	if err := h.leaves.Apply(c.Context(), identity, request); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(*request)})
}

// Cancel handles POST /ess/leaves/:id/cancel.
func (h *LeaveHandler) Cancel(c *fiber.Ctx) error {
	identity, _, err := requireEmployee(c)
	if err != nil {
		return err
	}
	request, err := h.leaves.Cancel(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(*request)})
}

// MyBalances handles GET /ess/leaves/balances.
func (h *LeaveHandler) MyBalances(c *fiber.Ctx) error {
	_, employeeID, err := requireEmployee(c)
	if err != nil {
		return err
	}
	year := time.Now().Year()
	if q := c.Query("year"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "year must be numeric")
		}
		year = parsed
	}

	balances, err := h.leaves.Balances(c.Context(), employeeID, year)
	if err != nil {
		return err
	}
	out := make([]dto.LeaveBalanceResponse, 0, len(balances))
	for _, balance := range balances {
		out = append(out, dto.LeaveBalanceResponse{
			LeaveTypeID:   balance.LeaveTypeID,
			LeaveTypeName: balance.LeaveTypeName,
			TotalDays:     balance.TotalDays,
			UsedDays:      balance.UsedDays,
			RemainingDays: balance.RemainingDays,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// Pending handles GET /admin/leaves/pending.
func (h *LeaveHandler) Pending(c *fiber.Ctx) error {
	requests, err := h.leaves.ListPending(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponses(requests)})
}

// Approve handles POST /admin/leaves/:id/approve.
func (h *LeaveHandler) Approve(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	request, err := h.leaves.Approve(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(*request)})
}

// Reject handles POST /admin/leaves/:id/reject.
func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.LeaveRejectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	request, err := h.leaves.Reject(c.Context(), identity, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(*request)})
}

// requireIdentity pulls the authenticated principal off the request.
func requireIdentity(c *fiber.Ctx) (domain.Identity, error) {
	sc, ok := auth.SessionFromContext(c)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized("missing credentials")
	}
	identity, ok := sc.Identity()
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized("missing credentials")
	}
	return identity, nil
}

// requireEmployee additionally resolves the principal's employee record link,
// which self-service operations need.
func requireEmployee(c *fiber.Ctx) (domain.Identity, string, error) {
	identity, err := requireIdentity(c)
	if err != nil {
		return domain.Identity{}, "", err
	}
	if identity.EmployeeID == nil || *identity.EmployeeID == "" {
		return domain.Identity{}, "", apperrors.NewValidationError("account has no linked employee record", nil)
	}
	return identity, *identity.EmployeeID, nil
}
