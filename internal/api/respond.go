package api

import (
	"encoding/json"
	"net/http"

	"github.com/MikeSquared-Agency/Portfolio/internal/portfolio"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to its status code and error body.
func writeError(w http.ResponseWriter, err error) {
	body := portfolio.Classify(err)
	writeJSON(w, statusFor(body.Code), body)
}

func statusFor(code string) int {
	switch code {
	case portfolio.CodeInvalidBody, portfolio.CodeValidation, portfolio.CodeInsufficientCapacity:
		return http.StatusBadRequest
	case portfolio.CodeProblemTooLarge:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
