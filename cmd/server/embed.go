//go:build embed
// +build embed

package main

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"petchat/internal/logger"

	"github.com/gin-gonic/gin"
)

//go:embed web
var webFS embed.FS

// setupStaticFiles serves the chat page from the embedded web directory
func setupStaticFiles(router *gin.Engine, _ string, log *logger.Logger) {
	log.Info("using embedded web assets")

	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		log.Fatal("failed to open embedded web directory", "error", err)
	}

	index, err := fs.ReadFile(sub, "index.html")
	if err != nil {
		log.Fatal("failed to read embedded index.html", "error", err)
	}

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	router.StaticFS("/static", http.FS(sub))

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
}
