package handler

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the routes. Unknown paths fall through to staticDir, which
// holds the presentation layer; it is skipped if the directory is missing.
func NewRouter(h *Handler, staticDir string) *gin.Engine {
	r := gin.Default()

	r.GET("/ws", h.ServeWebSocket)
	r.GET("/healthz", h.Health)
	r.GET("/stats", h.GetStats)

	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			r.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))
		} else {
			log.Printf("WARNING: static directory %q not found, serving API only", staticDir)
		}
	}
	return r
}
