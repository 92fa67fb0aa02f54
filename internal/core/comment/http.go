// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment provides dish-scoped comments.

Routes are mounted under /dishes/{id}/comments, so every handler reads the dish
id from the parent route and never addresses a comment on its own.
*/
package comment

import (
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishhub/internal/platform/request"
	"github.com/taibuivan/dishhub/internal/platform/respond"
	"github.com/taibuivan/dishhub/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the comment endpoints on a router already scoped to
// one dish. Reading and writing needs a signed-in user, deleting needs admin.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/", handler.listComments)
		user.Get("/{commentID}", handler.getComment)
		user.Post("/", handler.addComment)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Delete("/{commentID}", handler.deleteComment)
	})
}

// addCommentRequest is the body of POST /dishes/{id}/comments.
type addCommentRequest struct {
	Author  string `json:"author"`
	Comment string `json:"comment"`
}

/*
GET /dishes/{id}/comments.

Response:
  - 200: []Comment, oldest first
  - 404: Dish not found
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListByDish(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

/*
GET /dishes/{id}/comments/{commentID}.

Response:
  - 200: Comment
  - 404: Dish or comment (scoped to the dish) not found
*/
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.service.Get(request.Context(),
		requestutil.ID(request, "id"),
		requestutil.ID(request, "commentID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

/*
POST /dishes/{id}/comments.

Request: JSON {"author", "comment"} or the same fields as a form.

Response:
  - 201: Comment
  - 400: ValidationError (author, comment)
  - 404: Dish not found
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addCommentRequest
	if err := decodeComment(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Add(request.Context(),
		requestutil.ID(request, "id"),
		claims.UserID,
		input.Author,
		input.Comment,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

/*
DELETE /dishes/{id}/comments/{commentID}.

Response:
  - 204: Deleted
  - 404: Dish or comment (scoped to the dish) not found
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Remove(request.Context(),
		requestutil.ID(request, "id"),
		requestutil.ID(request, "commentID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// decodeComment accepts JSON and form bodies alike.
func decodeComment(request *http.Request, input *addCommentRequest) error {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return requestutil.DecodeJSON(request, input)
	}

	if err := requestutil.ParseMultipart(request, constants.MaxUploadMemory); err != nil {
		return err
	}
	input.Author = request.FormValue("author")
	input.Comment = request.FormValue("comment")
	return nil
}
