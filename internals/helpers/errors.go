package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
	"kreditku_backend/internals/features/orders/workflow"
	"kreditku_backend/internals/features/simulations/calculator"
)

// IsUniqueViolation: pg error 23505
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// FromDomainError memetakan error service/domain ke response JSON yang konsisten.
func FromDomainError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var (
		fe      *fiber.Error
		ve      validator.ValidationErrors
		below   *calculator.BelowMinimumDownPaymentError
		invalid *calculator.InvalidInputError
		illegal *workflow.IllegalTransitionError
		cmdErr  *workflow.CommandError
	)

	switch {
	case errors.As(err, &fe):
		return JsonError(c, fe.Code, fe.Message)

	case errors.As(err, &ve):
		return JsonValidationError(c, ValidationErrorsToMap(ve))

	case errors.As(err, &below):
		return JsonErrorCode(c, fiber.StatusUnprocessableEntity, "BELOW_MINIMUM_DOWN_PAYMENT", below.Error(), fiber.Map{
			"minimum": below.Minimum,
			"given":   below.Given,
		})

	case errors.As(err, &invalid):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Success:   false,
			Message:   invalid.Error(),
			ErrorCode: "INVALID_INPUT",
			Errors:    map[string][]string{invalid.Field: {invalid.Reason}},
		})

	case errors.As(err, &illegal):
		return JsonErrorCode(c, fiber.StatusConflict, "ILLEGAL_TRANSITION", illegal.Error(), fiber.Map{
			"from":   illegal.From,
			"role":   illegal.Role,
			"action": illegal.Action,
		})

	case errors.As(err, &cmdErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Success:   false,
			Message:   cmdErr.Error(),
			ErrorCode: "VALIDATION_ERROR",
			Errors:    map[string][]string{cmdErr.Field: {cmdErr.Reason}},
		})

	case errors.Is(err, workflow.ErrStaleOrder):
		return JsonErrorCode(c, fiber.StatusConflict, "STALE_ORDER", err.Error(), nil)

	case errors.Is(err, gorm.ErrRecordNotFound):
		return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")

	case IsUniqueViolation(err):
		return JsonError(c, fiber.StatusConflict, "Data sudah ada (duplikat)")
	}

	configs.Log.Error("unhandled error",
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

// ErrorHandler untuk fiber.Config: panic/recover & error mentah tetap keluar dengan shape yang sama.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromDomainError(c, err)
}
