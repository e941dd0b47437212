//go:build embed
// +build embed

package main

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed web/dist
var webDist embed.FS

// setupStaticFiles serves the embedded chat widget build
func setupStaticFiles(router *gin.Engine) {
	logrus.Info("📦 Using embedded chat widget assets")

	distFS, err := fs.Sub(webDist, "web/dist")
	if err != nil {
		logrus.Fatalf("Failed to get dist subdirectory: %v", err)
	}

	router.NoRoute(func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if strings.HasPrefix(urlPath, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}

		name := strings.TrimPrefix(path.Clean(urlPath), "/")
		if name == "" {
			name = "index.html"
		}

		content, err := fs.ReadFile(distFS, name)
		if err != nil {
			// Unknown paths fall back to the widget shell so client-side routes keep working
			name = "index.html"
			content, err = fs.ReadFile(distFS, name)
			if err != nil {
				c.String(http.StatusNotFound, "404 page not found")
				return
			}
		}

		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = "text/html; charset=utf-8"
		}
		c.Data(http.StatusOK, contentType, content)
	})
}
