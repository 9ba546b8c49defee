package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cicd-demo/calcd/internal/calculator"
)

// Envelope status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusHealthy = "healthy"
)

// Fixed client-facing error messages
const (
	MessageInvalidOperation = "Invalid operation"
	MessageInternalError    = "Internal server error"
	MessageNotFound         = "Not found"
	MessageMethodNotAllowed = "Method not allowed"
)

// CalculationRequest is the decoded body of a /calculate request
type CalculationRequest struct {
	Operation string  `json:"operation" jsonschema:"enum=add,enum=subtract,enum=multiply,enum=divide"`
	A         float64 `json:"a" jsonschema:"default=0"`
	B         float64 `json:"b" jsonschema:"default=0"`
}

// CalculationResponse is the envelope returned by /calculate. Result is set
// only on success and Message only on error.
type CalculationResponse struct {
	Status  string   `json:"status" yaml:"status" jsonschema:"required,enum=success,enum=error"`
	Result  *float64 `json:"result,omitempty" yaml:"result,omitempty"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// HomeResponse is returned by the root endpoint
type HomeResponse struct {
	Status  string `json:"status" jsonschema:"required"`
	Message string `json:"message" jsonschema:"required"`
	Version string `json:"version" jsonschema:"required"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status" jsonschema:"required"`
}

func successResponse(result float64) CalculationResponse {
	return CalculationResponse{Status: StatusSuccess, Result: &result}
}

func errorResponse(message string) CalculationResponse {
	return CalculationResponse{Status: StatusError, Message: message}
}

// InputError reports an operand that cannot be coerced to a number
type InputError struct {
	Field string
	Value string
}

// Error implements the error interface
func (e *InputError) Error() string {
	return fmt.Sprintf("Invalid value for '%s': must be a number", e.Field)
}

// ParseCalculationRequest extracts a request from raw JSON. A body that is not
// a JSON object is treated as having no fields; absent operands default to 0.
func ParseCalculationRequest(raw []byte) (CalculationRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		fields = nil
	}

	var req CalculationRequest
	if v, ok := fields["operation"]; ok {
		var op string
		if err := json.Unmarshal(v, &op); err == nil {
			req.Operation = op
		}
	}

	var err error
	if req.A, err = numberField(fields, "a"); err != nil {
		return req, err
	}
	if req.B, err = numberField(fields, "b"); err != nil {
		return req, err
	}

	return req, nil
}

// numberField coerces fields[name] to a float64, defaulting to 0 when absent
func numberField(fields map[string]json.RawMessage, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, nil
	}

	// numbers are kept as text so JSON literals go through the same
	// ParseFloat rules as numeric strings
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return 0, &InputError{Field: name, Value: string(raw)}
	}

	n, ok := coerceNumber(value)
	if !ok {
		return 0, &InputError{Field: name, Value: string(raw)}
	}
	return n, nil
}

// coerceNumber converts a decoded JSON value to a float64
func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		return parseNumber(v.String())
	case string:
		return parseNumber(strings.TrimSpace(v))
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// parseNumber parses s as a float64; out of range values saturate to ±Inf
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

// HandleCalculate runs a /calculate request body through parsing, operation
// lookup and evaluation, returning the HTTP status and envelope to send.
// Non-finite results are reported as internal errors.
func HandleCalculate(raw []byte) (int, CalculationResponse) {
	req, err := ParseCalculationRequest(raw)
	if err != nil {
		return classifyError(err)
	}

	op, ok := calculator.ParseOperation(req.Operation)
	if !ok {
		return http.StatusBadRequest, errorResponse(MessageInvalidOperation)
	}

	result, err := calculator.Apply(op, req.A, req.B)
	if err != nil {
		return classifyError(err)
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return classifyError(fmt.Errorf("%s result %v is not representable in JSON", op, result))
	}

	return http.StatusOK, successResponse(result)
}

// classifyError maps a dispatch failure to a status code and envelope
func classifyError(err error) (int, CalculationResponse) {
	var inputErr *InputError
	switch {
	case errors.Is(err, calculator.ErrDivisionByZero):
		return http.StatusBadRequest, errorResponse(err.Error())
	case errors.Is(err, calculator.ErrUnknownOperation):
		return http.StatusBadRequest, errorResponse(MessageInvalidOperation)
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, errorResponse(inputErr.Error())
	default:
		log.Error().Err(err).Msg("Unexpected calculation failure")
		return http.StatusInternalServerError, errorResponse(MessageInternalError)
	}
}
