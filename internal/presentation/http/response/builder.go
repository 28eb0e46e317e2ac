package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Envelope is the uniform wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Builder constructs consistent `{success, data, message}` responses.
type Builder struct {
	ctx     echo.Context
	status  int
	data    any
	message string
	err     error
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithData attaches a success payload.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithMessage attaches a human-readable message.
func (b *Builder) WithMessage(message string) *Builder {
	b.message = message
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	return b.ctx.JSON(b.status, Envelope{
		Success: true,
		Data:    b.data,
		Message: b.message,
	})
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := b.status
	if status < http.StatusBadRequest {
		status = appErr.StatusCode()
	}

	message := appErr.Message()
	// Internal faults carry DB or driver detail; that stays in server logs,
	// the client only sees a generic message.
	if appErr.Kind() == errorbank.KindInternal {
		message = "an unexpected error occurred"
	}

	return b.ctx.JSON(status, Envelope{
		Success: false,
		Message: message,
	})
}
