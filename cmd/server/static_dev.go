//go:build !embed
// +build !embed

package main

import (
	"net/http"
	"path/filepath"
	"strings"

	"petchat/internal/logger"

	"github.com/gin-gonic/gin"
)

// setupStaticFiles serves the chat page from disk for development
func setupStaticFiles(router *gin.Engine, webDir string, log *logger.Logger) {
	log.Info("using local filesystem for web assets", "dir", webDir)

	router.StaticFile("/", filepath.Join(webDir, "index.html"))
	router.Static("/static", webDir)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.File(filepath.Join(webDir, "index.html"))
	})
}
