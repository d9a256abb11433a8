package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"https://d18a8kvsiz5rjf.cloudfront.net",
	"https://d394mz5qj3yru2.cloudfront.net",
	"http://localhost:3500", // local frontend on 3500 accessing the API on 3000
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Origin", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
