package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/validate"
)

// Response is the envelope every endpoint returns.
type Response struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      any    `json:"error,omitempty"`
	Data       any    `json:"data"`
}

func NewSuccess(msg string, data any) *Response {
	return &Response{StatusCode: fiber.StatusOK, Success: true, Message: msg, Data: data}
}

func NewCreated(msg string, data any) *Response {
	r := NewSuccess(msg, data)
	r.StatusCode = fiber.StatusCreated
	return r
}

// NewFailed maps err to a status code and error payload. Server errors
// are logged and their details hidden.
func NewFailed(err error, log logrus.FieldLogger) *Response {
	res := &Response{StatusCode: statusFor(err), Message: err.Error()}

	var fe *validate.FieldsError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fe):
		res.Message = "validation failed"
		res.Error = fe.Fields
	case errors.As(err, &fiberErr):
		res.Message = fiberErr.Message
	case res.StatusCode >= fiber.StatusInternalServerError:
		if log != nil {
			log.WithError(err).Error("request failed")
		}
		res.Message = "Internal Server Error"
	}
	return res
}

func statusFor(err error) int {
	var fe *validate.FieldsError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &fe),
		errors.Is(err, tutor.ErrUnknownTopic),
		errors.Is(err, session.ErrEmptyQuiz):
		return fiber.StatusBadRequest
	case errors.Is(err, tutor.ErrSessionNotFound),
		errors.Is(err, tutor.ErrQuizNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, recommend.ErrExhausted),
		errors.Is(err, tutor.ErrNoQuestions):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func (r *Response) Send(c *fiber.Ctx) error {
	return c.Status(r.StatusCode).JSON(r)
}

// ErrorHandler renders errors returned by handlers in the envelope.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return NewFailed(err, log).Send(c)
	}
}
