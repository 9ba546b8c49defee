package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cicd-demo/calcd/internal/calculator"
)

// maxBodyBytes caps the size of a /calculate request body
const maxBodyBytes = 1 << 20

// HTTP Handlers

// home returns the welcome message and API version
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, HomeResponse{
		Status:  StatusSuccess,
		Message: WelcomeMessage,
		Version: APIVersion.String(),
	})
}

// healthCheck returns server health status
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, HealthResponse{Status: StatusHealthy})
}

// calculate evaluates an arithmetic operation from the request body
func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		// unreadable bodies are treated like a body with no fields
		log.Debug().Err(err).Msg("Failed to read request body")
		body = nil
	}

	status, resp := HandleCalculate(body)
	if err := writeJSON(w, status, resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode calculation result")
	}

	s.metrics.ObserveCalculation(operationLabel(body), resp.Status)
}

// notFound renders unknown paths as an error envelope
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusNotFound, errorResponse(MessageNotFound))
}

// methodNotAllowed renders known paths hit with the wrong method
func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusMethodNotAllowed, errorResponse(MessageMethodNotAllowed))
}

// writeJSON encodes v before touching w so an encoding failure leaves the
// response unwritten. Only encoding errors are returned.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		log.Debug().Err(err).Msg("Failed to write response")
	}
	return nil
}

// operationLabel returns the metrics label for the operation named in body
func operationLabel(body []byte) string {
	req, _ := ParseCalculationRequest(body)
	if op, ok := calculator.ParseOperation(req.Operation); ok {
		return op.String()
	}
	return "invalid"
}
