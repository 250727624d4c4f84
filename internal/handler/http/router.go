package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vasiliy-maslov/courses-api/internal/course"
	"github.com/vasiliy-maslov/courses-api/internal/user"
)

type RouterConfig struct {
	EnableErrorLogging bool
}

// NewRouter wires the full HTTP surface: public course reads, Basic-Auth
// protected writes, the greeting route, and the 404 fallback.
func NewRouter(userSvc user.Service, courseSvc course.Service, cfg RouterConfig) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(Recoverer(cfg.EnableErrorLogging))

	// The fallback must be registered before Route: chi only forwards it to
	// subrouters mounted afterwards.
	routeNotFound := func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Route Not Found")
	}
	router.NotFound(routeNotFound)
	router.MethodNotAllowed(routeNotFound)

	userHandler := NewUserHandler(userSvc)
	courseHandler := NewCourseHandler(courseSvc)
	requireAuth := RequireAuth(userSvc)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{
			"message": "Welcome to the REST API project!",
		})
	})

	router.Route("/api", func(api chi.Router) {
		api.With(requireAuth).Get("/users", userHandler.handleGetCurrentUser)
		api.Post("/users", userHandler.handleCreateUser)

		api.Get("/courses", courseHandler.handleListCourses)
		api.Get("/courses/{id}", courseHandler.handleGetCourse)
		api.With(requireAuth).Post("/courses", courseHandler.handleCreateCourse)
		api.With(requireAuth).Put("/courses/{id}", courseHandler.handleUpdateCourse)
		api.With(requireAuth).Delete("/courses/{id}", courseHandler.handleDeleteCourse)
	})

	return router
}
