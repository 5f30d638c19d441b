package handlers

import (
	"strings"

	"studyon-billing/internal/adapters/persistence/models"
	"studyon-billing/internal/core/domain"
	"studyon-billing/internal/core/services"
	"studyon-billing/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles ledger history endpoints
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// History lists the authenticated user's transactions
// @Summary Transaction history
// @Description Oldest first; filter by type, course code and drop ended rentals
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param type query string false "payment or deposit"
// @Param code query string false "Course code"
// @Param skip_expired query bool false "Hide ended rentals"
// @Success 200 {object} response.Response{data=[]models.TransactionResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /transactions [get]
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Пользователь не авторизован")
	}

	filter := domain.TransactionFilter{
		CourseCode:  strings.TrimSpace(c.Query("code")),
		SkipExpired: truthy(c.Query("skip_expired")),
	}
	if raw := c.Query("type"); raw != "" {
		typ, err := domain.ParseTransactionType(raw)
		if err != nil {
			return ledgerError(c, err)
		}
		filter.Type = &typ
	}

	txs, err := h.transactionService.History(c.Context(), userID, filter)
	if err != nil {
		return ledgerError(c, err)
	}

	items := make([]*models.TransactionResponse, len(txs))
	for i, tx := range txs {
		items[i] = models.NewTransactionResponse(tx)
	}
	return response.Success(c, "Transactions retrieved successfully", items)
}

// truthy treats any value except empty, "0" and "false" as set
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false":
		return false
	}
	return true
}
