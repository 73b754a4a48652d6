package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/kitcart/pkg/types"
)

// CORS returns middleware that lets the storefront origins call the cart API with
// credentials so the session cookie travels along.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", SessionHeader, "X-Requested-With"},
		ExposedHeaders:   []string{SessionHeader, types.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
