package handlers

import (
	"errors"
	"log"

	"studyon-billing/internal/core/domain"
	"studyon-billing/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ledgerError maps domain errors of the billing core to HTTP responses
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return response.NotAcceptable(c, "На счету недостаточно средств")
	case errors.Is(err, domain.ErrAlreadyPurchased):
		return response.NotAcceptable(c, "Курс уже оплачен")
	case errors.Is(err, domain.ErrCourseNotFound):
		return response.NotFound(c, "Курс не найден")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.Unauthorized(c, "Пользователь не авторизован")
	case errors.Is(err, domain.ErrInvalidAmount):
		return response.BadRequest(c, "Сумма должна быть больше нуля")
	case errors.Is(err, domain.ErrEmptyName):
		return response.BadRequest(c, "Название не может быть пустым")
	case errors.Is(err, domain.ErrPriceRequired):
		return response.Forbidden(c, "Курс платный, укажите цену")
	case errors.Is(err, domain.ErrDuplicateCode):
		return response.Conflict(c, "Курс с таким кодом уже существует")
	case errors.Is(err, domain.ErrUnknownCourseType), errors.Is(err, domain.ErrUnknownTxType):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Некорректные данные")
	default:
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		return response.InternalServerError(c, "Internal Server Error")
	}
}

// currentUserID reads the user ID set by AuthMiddleware
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}
