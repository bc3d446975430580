package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// ValidationError describes one rejected request field.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// HistoryQuery holds /history query parameters. An absent or non-integer
// limit means the default; 0 means every stored record.
type HistoryQuery struct {
	RawLimit string `query:"limit"`
	Limit    int    `query:"-" validate:"gte=0"`

	defaultLimit int
}

func (q *HistoryQuery) normalize() {
	n, err := strconv.Atoi(strings.TrimSpace(q.RawLimit))
	if err != nil {
		q.Limit = q.defaultLimit
		return
	}
	q.Limit = n
}

// normalizer is implemented by queries that derive fields after binding.
type normalizer interface {
	normalize()
}

// ReadAndValidateQuery binds query parameters into req regardless of the HTTP
// method and validates the result.
func ReadAndValidateQuery(c echo.Context, req any) *AppError {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, req); err != nil {
		return BadRequestError("Invalid query parameters").WithDetails(validationDetails(err)).WithError(err)
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return BadRequestError("Invalid query parameters").WithDetails(validationDetails(err)).WithError(err)
	}
	return nil
}

func validationDetails(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, ValidationError{
				Code:    "ERR_" + strings.ToUpper(fe.Tag()),
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
		return out
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return []ValidationError{{Code: "ERR_BIND", Message: fmt.Sprintf("%v", he.Message)}}
	}
	return []ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
