package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/courses-api/internal/course"
	"github.com/vasiliy-maslov/courses-api/internal/user"
)

// ValidationErrorResponse carries every violation found in a request body.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// formatValidationErrors turns validator violations into the per-field
// client messages, in rule declaration order.
func formatValidationErrors(validationErrors validator.ValidationErrors) []string {
	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, validationMessage(fieldError))
	}
	return messages
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Field() {
	case "FirstName":
		return `Please provide a value for "firstName"`
	case "LastName":
		return `Please provide a value for "lastName"`
	case "Email":
		if fieldError.Tag() == "email" {
			return `Please provide a valid email address for "email"`
		}
		return `Please provide a value for "email"`
	case "Password":
		return `Please provide a value for "password"`
	case "Title":
		return `Please provide a "title"`
	case "Description":
		return `Please provide a "description"`
	default:
		return fmt.Sprintf("Invalid value for %q", fieldError.Field())
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, course.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, course.ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
