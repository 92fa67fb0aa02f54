// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishhub/internal/platform/apperr"
	"github.com/taibuivan/dishhub/internal/platform/respond"
)

func render(err error) (*httptest.ResponseRecorder, respond.ErrorEnvelope) {
	recorder := httptest.NewRecorder()
	respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/dishes", nil), err)

	var envelope respond.ErrorEnvelope
	_ = json.NewDecoder(recorder.Body).Decode(&envelope)
	return recorder, envelope
}

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.ValidationError("Validation failed", apperr.FieldError{Field: "title", Message: "dish.title already exists"}), http.StatusBadRequest, apperr.CodeValidation},
		{"not_found", apperr.NotFound("Dish"), http.StatusNotFound, apperr.CodeNotFound},
		{"wrapped", errors.Join(errors.New("context"), apperr.Forbidden("no")), http.StatusForbidden, apperr.CodeForbidden},
		{"plain", errors.New("disk full"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, envelope := render(tt.err)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, envelope.Code)
		})
	}
}

func TestError_HidesCause(t *testing.T) {
	_, envelope := render(apperr.Internal(errors.New("pq: relation catalog.dish does not exist")))
	assert.Equal(t, "An unexpected error occurred", envelope.Error)
}

func TestError_RetryAfter(t *testing.T) {
	recorder, envelope := render(apperr.RateLimited(1500 * time.Millisecond))

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "2", recorder.Header().Get("Retry-After"))
	assert.Equal(t, apperr.CodeRateLimited, envelope.Code)
}

func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"title": "Pho"})

	var body map[string]map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "Pho", body["data"]["title"])
}

func TestFields(t *testing.T) {
	err := apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "comment", Message: "first"},
		apperr.FieldError{Field: "comment", Message: "second"},
		apperr.FieldError{Field: "author", Message: "This field is required"},
	)
	assert.Equal(t, map[string]string{"comment": "first", "author": "This field is required"}, err.Fields())
}
