//go:build !embed
// +build !embed

package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// setupStaticFiles serves the chat widget from disk during development
func setupStaticFiles(router *gin.Engine) {
	logrus.Info("🔧 Using local filesystem for chat widget assets (development mode)")

	router.Static("/widget", "./web/static")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Chat widget is served separately in development",
			"api":     "/api/v1/sessions",
			"hint":    "Build with -tags embed to bundle web/dist into the binary",
		})
	})
}
