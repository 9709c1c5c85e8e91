package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// DefaultOrigins are the local editor dev servers.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3333",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:3333",
	"http://127.0.0.1:5173",
}

// CORS allows the editor front end to call the API. An empty origins
// list uses DefaultOrigins.
func CORS(origins ...string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = DefaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "If-Match", "If-None-Match"},
		ExposeHeaders:    []string{"ETag"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
