package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/courses-api/internal/user"
)

type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"emailAddress" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

// UserResponse is the public projection of a user. The password hash never
// appears here.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"emailAddress"`
}

type UserHandler struct {
	service  user.Service
	validate *validator.Validate
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// handleGetCurrentUser returns the authenticated user's own record.
func (h *UserHandler) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := CurrentUser(r.Context())
	if !ok {
		// Route is behind RequireAuth; reaching this means a wiring bug.
		log.Error().Msg("No authenticated user in request context")
		respondWithError(w, http.StatusUnauthorized, "Access Denied")
		return
	}

	responsePayload := UserResponse{
		ID:        currentUser.ID,
		FirstName: currentUser.FirstName,
		LastName:  currentUser.LastName,
		Email:     currentUser.Email,
	}

	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Errors: formatValidationErrors(validationErrors),
			})
		} else {
			log.Error().Err(err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return
	}

	domainUser := user.User{
		FirstName:    requestPayload.FirstName,
		LastName:     requestPayload.LastName,
		Email:        requestPayload.Email,
		PasswordHash: requestPayload.Password,
	}

	if _, err := h.service.CreateUser(r.Context(), &domainUser); err != nil {
		log.Error().Err(err).Msg("Failed to create user via service")

		clientMessage := "Failed to create user"
		if errors.Is(err, user.ErrEmailExists) {
			clientMessage = "Email already exists"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}
