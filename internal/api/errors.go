package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	chesserrors "github.com/lgbarn/chaichess-go/internal/errors"
)

// statusFor maps an error to its HTTP status code.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, chesserrors.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, chesserrors.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, chesserrors.ErrNoLegalMoves),
		errors.Is(err, chesserrors.ErrGameChanged):
		return fiber.StatusConflict
	case errors.Is(err, chesserrors.ErrInvalidSquare),
		errors.Is(err, chesserrors.ErrEmptySquare),
		errors.Is(err, chesserrors.ErrNotYourPiece),
		errors.Is(err, chesserrors.ErrInvalidFEN),
		errors.Is(err, chesserrors.ErrInvalidState),
		errors.Is(err, chesserrors.ErrInvalidConfig):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// handleError writes {"error": message} with the mapped status.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		s.log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
