// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path parameters, bodies and the principal from
// an incoming request. Decoding failures come back as VALIDATION_ERROR values
// ready for respond.Error.
package requestutil

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishhub/internal/platform/apperr"
	"github.com/taibuivan/dishhub/internal/platform/ctxutil"
	"github.com/taibuivan/dishhub/internal/platform/sec"
	"github.com/taibuivan/dishhub/internal/platform/validate"
)

// maxJSONBody bounds a JSON request body.
const maxJSONBody = 1 << 20

// ErrInvalidForm reports a form or multipart body that could not be parsed.
var ErrInvalidForm = apperr.ValidationError("Invalid multipart form payload")

// DecodeJSON decodes at most one JSON value from the body into target.
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxJSONBody))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns the named chi path parameter, "" when absent.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// ParseMultipart parses a multipart/form-data body with maxMemory bytes held
// in memory. A url-encoded body is accepted too, so a PATCH without a file
// part can be sent as a plain form.
func ParseMultipart(request *http.Request, maxMemory int64) error {
	err := request.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = request.ParseForm()
	}
	if err != nil {
		return ErrInvalidForm
	}
	return nil
}

// OptionalField distinguishes a field sent empty (pointer to "") from a field
// not sent at all (nil). Only body values count, never the query string.
func OptionalField(request *http.Request, name string) *string {
	values := request.PostForm
	if request.MultipartForm != nil {
		values = request.MultipartForm.Value
	}

	sent, ok := values[name]
	if !ok {
		return nil
	}
	var first string
	if len(sent) > 0 {
		first = sent[0]
	}
	return &first
}

// OptionalFile returns the first file part named name, or nil.
func OptionalFile(request *http.Request, name string) *multipart.FileHeader {
	if request.MultipartForm == nil || len(request.MultipartForm.File[name]) == 0 {
		return nil
	}
	return request.MultipartForm.File[name][0]
}

// RequiredClaims returns the principal or a 401 UNAUTHORIZED error.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
		return claims, nil
	}
	return nil, apperr.Unauthorized("Authentication required")
}
