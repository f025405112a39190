package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerHomeRoutes sets up the root greeting and the health check.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", home)
	r.GET("/finnconnect/health", health)
}

// home godoc
// @Summary Root greeting
// @Produce plain
// @Success 200 {string} string "Hello, World!"
// @Router / [get]
func home(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

// health godoc
// @Summary Health check
// @Produce plain
// @Success 200 {string} string "SUCCESS"
// @Router /finnconnect/health [get]
func health(c *gin.Context) {
	c.String(http.StatusOK, "SUCCESS")
}
