// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dish provides the dish catalog: dishes with an image, a tag set and
comments.

# Routing Strategy

  - Reading (signed-in users): list, tag search and detail.
  - Management (admin): multipart create and partial update, delete.

Write requests are multipart forms with the fields title, anons, text, tags
and the file part image. A form key that is present, even with an empty
value, counts as supplied.
*/
package dish

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishhub/internal/core/image"
	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishhub/internal/platform/request"
	"github.com/taibuivan/dishhub/internal/platform/respond"
	"github.com/taibuivan/dishhub/internal/platform/sec"
	"github.com/taibuivan/dishhub/internal/platform/validate"
	"github.com/taibuivan/dishhub/pkg/pointer"
)

// ParamTagName is the query parameter of the tag search route.
const ParamTagName = "tagName"

// # Handler Implementation

// Handler implements the HTTP layer for dishes.
type Handler struct {
	service   *Service
	imageBase string
}

// NewHandler constructs a dish [Handler]. imageBase is the public URL prefix
// under which stored image files are served.
func NewHandler(service *Service, imageBase string) *Handler {
	return &Handler{
		service:   service,
		imageBase: strings.TrimSuffix(imageBase, "/"),
	}
}

// RegisterRoutes mounts the dish endpoints on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/", handler.listDishes)
		user.Get("/tag/search", handler.searchByTag)
		user.Get("/{id}", handler.getDish)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createDish)
		admin.Patch("/{id}", handler.updateDish)
		admin.Delete("/{id}", handler.deleteDish)
	})
}

// # Response Views

type dishView struct {
	*Dish
	ImageURL string `json:"image_url"`
}

type detailView struct {
	*Detail
	ImageURL string `json:"image_url"`
}

func (handler *Handler) view(dish *Dish) dishView {
	return dishView{Dish: dish, ImageURL: handler.imageURL(dish.Image)}
}

func (handler *Handler) imageURL(filename string) string {
	return handler.imageBase + "/" + filename
}

// # Endpoints

/*
GET /dishes?tag=.

Response:
  - 200: []Dish, in creation order. With a non-empty tag, only dishes
    having a tag whose name contains it; an empty tag is no filter.
*/
func (handler *Handler) listDishes(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{}
	if tag := request.URL.Query().Get("tag"); tag != "" {
		filter.Tag = pointer.To(tag)
	}
	handler.list(writer, request, filter)
}

// searchByTag serves GET /dishes/tag/search?tagName=. The substring is
// mandatory; an empty one would match every tagged dish.
func (handler *Handler) searchByTag(writer http.ResponseWriter, request *http.Request) {
	tagName := request.URL.Query().Get(ParamTagName)

	validator := &validate.Validator{}
	if err := validator.Required(ParamTagName, tagName).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.list(writer, request, Filter{Tag: pointer.To(tagName)})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, filter Filter) {
	dishes, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]dishView, 0, len(dishes))
	for _, dish := range dishes {
		views = append(views, handler.view(dish))
	}
	respond.OK(writer, views)
}

/*
GET /dishes/{id}.

Response:
  - 200: Dish with tags and comments
  - 404: Dish not found
*/
func (handler *Handler) getDish(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detailView{Detail: detail, ImageURL: handler.imageURL(detail.Image)})
}

/*
POST /dishes.

Request: multipart form (title, anons, text, tags, image).

Response:
  - 201: Dish
  - 400: ValidationError
*/
func (handler *Handler) createDish(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(request, constants.MaxUploadMemory); err != nil {
		respond.Error(writer, request, err)
		return
	}

	upload, closeUpload, err := openUpload(requestutil.OptionalFile(request, image.Field))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUpload()

	input := NewDish{
		Title: pointer.Val(requestutil.OptionalField(request, FieldTitle)),
		Anons: pointer.Val(requestutil.OptionalField(request, FieldAnons)),
		Text:  pointer.Val(requestutil.OptionalField(request, FieldText)),
		Image: upload,
		Tags:  requestutil.OptionalField(request, FieldTags),
	}

	dish, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, handler.view(dish))
}

/*
PATCH /dishes/{id}.

Request: multipart or url-encoded form; only the supplied keys change.

Response:
  - 200: Dish
  - 400: ValidationError
  - 404: Dish not found
*/
func (handler *Handler) updateDish(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(request, constants.MaxUploadMemory); err != nil {
		respond.Error(writer, request, err)
		return
	}

	upload, closeUpload, err := openUpload(requestutil.OptionalFile(request, image.Field))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUpload()

	patch := Patch{
		Title: requestutil.OptionalField(request, FieldTitle),
		Anons: requestutil.OptionalField(request, FieldAnons),
		Text:  requestutil.OptionalField(request, FieldText),
		Image: upload,
		Tags:  requestutil.OptionalField(request, FieldTags),
	}

	dish, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.view(dish))
}

/*
DELETE /dishes/{id}.

Response:
  - 204: Deleted, with its comments and image
  - 404: Dish not found
*/
func (handler *Handler) deleteDish(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// openUpload turns a multipart file part into an [image.Upload]. A nil header
// yields a nil upload and a no-op closer.
func openUpload(header *multipart.FileHeader) (*image.Upload, func(), error) {
	if header == nil {
		return nil, func() {}, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, func() {}, requestutil.ErrInvalidForm
	}

	upload := &image.Upload{Name: header.Filename, Size: header.Size, Body: file}
	return upload, func() { _ = file.Close() }, nil
}
