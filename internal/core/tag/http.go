package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/dishhub/internal/platform/middleware"
	"github.com/taibuivan/dishhub/internal/platform/respond"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Get("/", handler.listTags)
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.registry.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}
