package handlers

import (
	"studyon-billing/internal/adapters/persistence/models"
	"studyon-billing/internal/core/services"
	"studyon-billing/internal/pkg/pagination"
	"studyon-billing/internal/pkg/response"
	"studyon-billing/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// UserHandler handles user and balance endpoints
type UserHandler struct {
	userService    *services.UserService
	paymentService *services.PaymentService
	pager          pagination.Pager
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, paymentService *services.PaymentService, pageSize int) *UserHandler {
	return &UserHandler{
		userService:    userService,
		paymentService: paymentService,
		pager:          pagination.NewPager(pageSize),
	}
}

// DepositRequest represents deposit request body
type DepositRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

// DepositResponse represents a completed deposit
type DepositResponse struct {
	Transaction *models.TransactionResponse `json:"transaction"`
	Balance     decimal.Decimal             `json:"balance"`
}

// Current returns the authenticated user
// @Summary Get current user
// @Description Username, roles and balance of the authenticated user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.UserResponse}
// @Failure 401 {object} response.Response
// @Router /users/current [get]
func (h *UserHandler) Current(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.Current(c.Context(), userID)
	if err != nil {
		return ledgerError(c, err)
	}

	return response.Success(c, "User retrieved successfully", models.NewUserResponse(user))
}

// ListUsers lists all users (super admin only)
// @Summary List users
// @Description Paginated user list with balances
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (USERS_PAGE_SIZE when omitted)"
// @Success 200 {object} response.Response{data=pagination.Page[models.UserResponse]}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := h.pager.FromQuery(c)

	users, total, err := h.userService.ListUsers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	items := make([]*models.UserResponse, len(users))
	for i, u := range users {
		items[i] = models.NewUserResponse(u)
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewPage(items, params, total))
}

// Deposit credits the authenticated user's balance
// @Summary Deposit funds
// @Description Add a positive amount to the balance of the authenticated user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DepositRequest true "Amount"
// @Success 201 {object} response.Response{data=DepositResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /deposit [post]
func (h *UserHandler) Deposit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validator.Struct(&req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	tx, err := h.paymentService.Deposit(c.Context(), userID, *req.Amount)
	if err != nil {
		return ledgerError(c, err)
	}

	user, err := h.userService.Current(c.Context(), userID)
	if err != nil {
		return ledgerError(c, err)
	}

	return response.Created(c, "Deposit completed", &DepositResponse{
		Transaction: models.NewTransactionResponse(tx),
		Balance:     user.Balance,
	})
}
