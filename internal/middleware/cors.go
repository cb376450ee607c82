package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors lets browser clients on any origin drive games. Session tokens travel
// in the Authorization header, so credentials are not needed.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After"},
	}
	return cors.New(options).Handler
}
