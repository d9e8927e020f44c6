package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"survey-sensei-be/pkg/interview"
	"survey-sensei-be/pkg/interview/question"
	"survey-sensei-be/pkg/interview/synthesis"
)

// ErrorHandlerMiddleware translates domain errors bubbling out of handlers
// into the uniform error envelope. Lifecycle violations map to 409, unknown
// references to 404, bad input to 400, and generator failures to 502.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var (
			apiErr        *ApiError
			validationErr *ValidationError
			transitionErr *interview.InvalidTransitionError
			skipErr       *interview.SkipLimitError
			duplicateErr  *interview.DuplicateAnswerError
			unknownQErr   *interview.UnknownQuestionError
			selectionErr  *interview.InvalidSelectionError
			parseErr      *question.ParseError
			normalizeErr  *synthesis.NormalizeError
			fiberErr      *fiber.Error
		)

		switch {
		case errors.As(err, &apiErr):
			return ctx.Status(apiErr.Status).JSON(ErrorResponse(apiErr.Status, apiErr.Message))

		case errors.As(err, &validationErr):
			body := ErrorResponse(fiber.StatusBadRequest, "request validation failed")
			body.Details = validationErr.Fields
			return ctx.Status(fiber.StatusBadRequest).JSON(body)

		case errors.As(err, &skipErr):
			body := ErrorResponse(fiber.StatusConflict, err.Error())
			body.Details = fiber.Map{"skips_remaining": skipErr.Remaining()}
			return ctx.Status(fiber.StatusConflict).JSON(body)

		case errors.As(err, &transitionErr), errors.As(err, &duplicateErr):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, err.Error()))

		case errors.As(err, &unknownQErr):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))

		case errors.As(err, &selectionErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))

		case errors.As(err, &parseErr), errors.As(err, &normalizeErr):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, "generator produced unusable output"))

		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))

		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
		}
	}
}
