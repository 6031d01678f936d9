// Package httputil holds the request decoding and response writing shared
// by the API handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}

		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate runs struct tag validation and flattens failures into one message.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}

	return errors.New(strings.Join(msgs, "; "))
}

// DecodeJSON decodes the body into dst and validates it. An empty body
// leaves dst at its zero value when allowEmpty is set.
func DecodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			return fmt.Errorf("invalid request body: %w", err)
		}
	}

	return Validate(dst)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func WriteError(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, errorResponse{Detail: detail})
}

type messageResponse struct {
	Message string `json:"message"`
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, messageResponse{Message: msg})
}

// Internal logs err and answers with a generic 500.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	WriteError(w, http.StatusInternalServerError, "internal error")
}

// dateLayouts are the accepted request date forms, tried in order.
var dateLayouts = []string{time.DateOnly, "2006-01-02T15:04:05", time.DateTime}

// ParseDate parses a calendar date at UTC midnight; empty input yields nil.
func ParseDate(s string) (*time.Time, error) {
	return ParseDateIn(s, time.UTC)
}

// ParseDateIn parses a YYYY-MM-DD date or a zone-less datetime as wall
// time in loc; empty input yields nil.
func ParseDateIn(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", s)
}

// EndOfDay moves t to the last instant of its calendar day in t's location,
// so that date bounds on timestamps are inclusive.
func EndOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	y, m, d := t.Date()

	return new(time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond))
}

func ParseDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}

	return &d, nil
}

// Optional returns nil for an empty string.
func Optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
