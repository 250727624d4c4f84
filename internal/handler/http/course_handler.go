package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/courses-api/internal/course"
)

// CourseRequest is the write payload for both create and update. A userId
// field in the body is deliberately not bound: the owner always comes from
// the authenticated context.
type CourseRequest struct {
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

type CourseResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EstimatedTime   *string   `json:"estimatedTime"`
	MaterialsNeeded *string   `json:"materialsNeeded"`
	UserID          uuid.UUID `json:"userId"`
}

type CourseHandler struct {
	service  course.Service
	validate *validator.Validate
}

func NewCourseHandler(service course.Service) *CourseHandler {
	return &CourseHandler{
		service:  service,
		validate: validator.New(),
	}
}

func courseToResponse(c *course.Course) CourseResponse {
	return CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		UserID:          c.UserID,
	}
}

func (h *CourseHandler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list courses via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to list courses")
		return
	}

	responsePayload := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		responsePayload = append(responsePayload, courseToResponse(&courses[i]))
	}

	respondWithJSON(w, http.StatusOK, responsePayload)
}

func (h *CourseHandler) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		// An id that is not a UUID cannot name an existing course.
		respondWithError(w, http.StatusNotFound, "Course Not Found")
		return
	}

	foundCourse, err := h.service.GetCourseByID(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Course Not Found")
			return
		}
		log.Error().Err(err).Msg("Failed to get course by id via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to get course")
		return
	}

	respondWithJSON(w, http.StatusOK, courseToResponse(foundCourse))
}

func (h *CourseHandler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := CurrentUser(r.Context())
	if !ok {
		log.Error().Msg("No authenticated user in request context")
		respondWithError(w, http.StatusUnauthorized, "Access Denied")
		return
	}

	requestPayload, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	domainCourse := course.Course{
		Title:           requestPayload.Title,
		Description:     requestPayload.Description,
		EstimatedTime:   requestPayload.EstimatedTime,
		MaterialsNeeded: requestPayload.MaterialsNeeded,
		UserID:          currentUser.ID,
	}

	createdCourse, err := h.service.CreateCourse(r.Context(), &domainCourse)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create course via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to create course")
		return
	}

	w.Header().Set("Location", "/courses/"+createdCourse.ID.String())
	w.WriteHeader(http.StatusCreated)
}

func (h *CourseHandler) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := CurrentUser(r.Context())
	if !ok {
		log.Error().Msg("No authenticated user in request context")
		respondWithError(w, http.StatusUnauthorized, "Access Denied")
		return
	}

	courseID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Course Not Found")
		return
	}

	requestPayload, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	changes := course.Course{
		Title:           requestPayload.Title,
		Description:     requestPayload.Description,
		EstimatedTime:   requestPayload.EstimatedTime,
		MaterialsNeeded: requestPayload.MaterialsNeeded,
	}

	err = h.service.UpdateCourse(r.Context(), courseID, currentUser.ID, &changes)
	if err != nil {
		switch {
		case errors.Is(err, course.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Course Not Found")
		case errors.Is(err, course.ErrNotOwner):
			respondWithError(w, http.StatusForbidden, "You can only edit your own courses")
		default:
			log.Error().Err(err).Msg("Failed to update course via service")
			respondWithError(w, http.StatusInternalServerError, "Failed to update course")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := CurrentUser(r.Context())
	if !ok {
		log.Error().Msg("No authenticated user in request context")
		respondWithError(w, http.StatusUnauthorized, "Access Denied")
		return
	}

	courseID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Course Not Found")
		return
	}

	err = h.service.DeleteCourse(r.Context(), courseID, currentUser.ID)
	if err != nil {
		switch {
		case errors.Is(err, course.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Course Not Found")
		case errors.Is(err, course.ErrNotOwner):
			respondWithError(w, http.StatusForbidden, "You can only delete your own courses")
		default:
			log.Error().Err(err).Msg("Failed to delete course via service")
			respondWithError(w, http.StatusInternalServerError, "Failed to delete course")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeAndValidate reads the request body into a CourseRequest and runs the
// declared rules, collecting every violation. It writes the 400 response
// itself and reports whether the handler may continue.
func (h *CourseHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (*CourseRequest, bool) {
	var requestPayload CourseRequest

	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return nil, false
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
		return nil, false
	}

	return &requestPayload, true
}
