//go:build unit || integration

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// withURLParam attaches a chi route parameter to req, as the router would.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
