// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/dishhub/internal/platform/constants"
)

// AppConfig is the slice of the configuration CORS needs.
type AppConfig interface {
	IsDevelopment() bool
}

// trustedDomain is always allowed, together with its subdomains.
const trustedDomain = "dishhub.app"

var corsHeaders = map[string]string{
	"Access-Control-Allow-Methods":     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	"Access-Control-Allow-Headers":     "Accept, Authorization, Content-Type, X-Request-ID",
	"Access-Control-Expose-Headers":    "Retry-After, X-Request-ID",
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Max-Age":           "300",
}

type originPolicy struct {
	openToAll bool
	listed    map[string]bool
}

func (policy originPolicy) allows(origin string) bool {
	if policy.openToAll || policy.listed[origin] {
		return true
	}
	host := origin
	if _, rest, ok := strings.Cut(origin, "://"); ok {
		host = rest
	}
	return host == trustedDomain || strings.HasSuffix(host, "."+trustedDomain)
}

/*
CORS answers cross-origin requests.

Development mode allows every origin. Otherwise the origin must be
dishhub.app (or a subdomain) or appear in extraOrigins, a comma separated
list. Preflight OPTIONS requests are answered with 204 and never reach the
router.
*/
func CORS(cfg AppConfig, extraOrigins string) func(http.Handler) http.Handler {
	policy := originPolicy{openToAll: cfg.IsDevelopment(), listed: map[string]bool{}}
	for _, origin := range strings.Split(extraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			policy.listed[origin] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)
			if policy.allows(origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				for name, value := range corsHeaders {
					header.Set(name, value)
				}
			}

			if request.Method == http.MethodOptions && request.Header.Get("Access-Control-Request-Method") != "" {
				writer.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
