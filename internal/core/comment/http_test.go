// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishhub/internal/core/comment"
	"github.com/taibuivan/dishhub/internal/platform/ctxutil"
	"github.com/taibuivan/dishhub/internal/platform/sec"
)

func newRouter(f fixture) http.Handler {
	router := chi.NewRouter()
	router.Route("/dishes/{id}/comments", comment.NewHandler(f.service).RegisterRoutes)
	return router
}

func do(router http.Handler, request *http.Request, claims *sec.AuthClaims) *httptest.ResponseRecorder {
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

var (
	guest = &sec.AuthClaims{UserID: "guest-1", Role: string(sec.RoleGuest)}
	admin = &sec.AuthClaims{UserID: "admin-1", Role: string(sec.RoleAdmin)}
)

func TestHandler_AddAndRead(t *testing.T) {
	f := newFixture()
	router := newRouter(f)
	base := "/dishes/" + f.dishA + "/comments"

	request := httptest.NewRequest(http.MethodPost, base, strings.NewReader(`{"author":"Jane","comment":"Lovely broth"}`))
	request.Header.Set("Content-Type", "application/json")
	recorder := do(router, request, admin)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Data comment.Comment `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&created))
	assert.Equal(t, "admin Jane", created.Data.Author)

	t.Run("Form_Body", func(t *testing.T) {
		form := url.Values{"author": {"Bob"}, "comment": {"Too salty"}}
		request := httptest.NewRequest(http.MethodPost, base, strings.NewReader(form.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.Equal(t, http.StatusCreated, do(router, request, guest).Code)
	})

	t.Run("Get_Scoped", func(t *testing.T) {
		own := httptest.NewRequest(http.MethodGet, base+"/"+created.Data.ID, nil)
		assert.Equal(t, http.StatusOK, do(router, own, guest).Code)

		other := httptest.NewRequest(http.MethodGet, "/dishes/"+f.dishB+"/comments/"+created.Data.ID, nil)
		assert.Equal(t, http.StatusNotFound, do(router, other, guest).Code)
	})

	t.Run("List", func(t *testing.T) {
		recorder := do(router, httptest.NewRequest(http.MethodGet, base, nil), guest)
		require.Equal(t, http.StatusOK, recorder.Code)

		var listed struct {
			Data []comment.Comment `json:"data"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&listed))
		assert.Len(t, listed.Data, 2)
	})
}

func TestHandler_Gates(t *testing.T) {
	f := newFixture()
	router := newRouter(f)
	base := "/dishes/" + f.dishA + "/comments"

	stored, err := f.service.Add(t.Context(), f.dishA, "guest-1", "Jane", "Nice one")
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		claims *sec.AuthClaims
		want   int
	}{
		{"list anonymous", http.MethodGet, base, nil, http.StatusUnauthorized},
		{"delete guest", http.MethodDelete, base + "/" + stored.ID, guest, http.StatusForbidden},
		{"delete admin", http.MethodDelete, base + "/" + stored.ID, admin, http.StatusNoContent},
		{"delete again", http.MethodDelete, base + "/" + stored.ID, admin, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(router, httptest.NewRequest(tt.method, tt.path, nil), tt.claims)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

func TestHandler_Add_Validation(t *testing.T) {
	f := newFixture()
	router := newRouter(f)

	request := httptest.NewRequest(http.MethodPost, "/dishes/"+f.dishA+"/comments", strings.NewReader(`{"author":"Jane","comment":"no"}`))
	request.Header.Set("Content-Type", "application/json")
	recorder := do(router, request, guest)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
}
