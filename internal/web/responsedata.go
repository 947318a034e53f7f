package web

import (
	"errors"

	"github.com/goserg/hackathon/internal/domain"

	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

type multierr interface {
	Unwrap() []error
}

func unwrap(err error) []error {
	var merr multierr
	if errors.As(err, &merr) {
		var errs []error
		for _, err := range merr.Unwrap() {
			errs = append(errs, unwrap(err)...)
		}
		return errs
	}
	return []error{err}
}

func newErrorResponse(err error) errorResponse {
	resp := errorResponse{Error: err.Error()}
	if errs := unwrap(err); len(errs) > 1 {
		for _, err := range errs {
			resp.Errors = append(resp.Errors, err.Error())
		}
	}
	return resp
}

// badRequest marks err as a client input failure.
type badRequest struct {
	err error
}

func (e badRequest) Error() string {
	return e.err.Error()
}

func (e badRequest) Unwrap() error {
	return e.err
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return badRequest{err: err}
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var br badRequest
	if errors.As(err, &br) {
		return fiber.StatusBadRequest
	}
	if errors.Is(err, domain.ErrDraw) {
		return fiber.StatusConflict
	}
	switch domain.KindOf(err) {
	case domain.KindUnauthorized:
		return fiber.StatusForbidden
	case domain.KindPhase, domain.KindUniqueness:
		return fiber.StatusConflict
	case domain.KindCapacity, domain.KindRule:
		return fiber.StatusUnprocessableEntity
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindInvalid:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
