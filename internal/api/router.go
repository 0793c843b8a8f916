// Package api wires HTTP routes for the arcade backend.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arcade-night/arcade-backend/internal/api/games"
	"github.com/arcade-night/arcade-backend/internal/api/students"
	"github.com/arcade-night/arcade-backend/internal/config"
	"github.com/arcade-night/arcade-backend/pkg/logger"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(
	cfg *config.Config,
	gamesHandler *games.Handler,
	studentsHandler *students.Handler,
	log *logger.Logger,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(log))

	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := engine.Group("/api")
	{
		api.POST("/auth/login", studentsHandler.Login)

		api.GET("/students/:studentId", studentsHandler.GetStudent)
		api.GET("/students/:studentId/rewards", studentsHandler.GetRewards)
		api.POST("/students/:studentId/rewards/:rewardId/claim", studentsHandler.ClaimReward)
		api.DELETE("/students/:studentId", studentsHandler.DeleteStudent)

		api.POST("/games/:gameName/scores", gamesHandler.SubmitScore)
		api.POST("/games/:gameName/submit-score", gamesHandler.SubmitScore)
		api.GET("/games/:gameName/rankings", gamesHandler.GetRankings)
		api.GET("/games/:gameName/top/:topN", gamesHandler.GetTopN)

		api.GET("/desktop-games", listGameFiles(cfg.Static.GamesDir, "desktop"))
		api.GET("/mobile-games", listGameFiles(cfg.Static.GamesDir, "mobile"))
	}

	engine.GET("/desktop/:filename", serveGameFile(cfg.Static.GamesDir, "desktop"))
	engine.GET("/mobile/:filename", serveGameFile(cfg.Static.GamesDir, "mobile"))

	engine.GET("/", servePage(cfg.Static.PublicDir, "index"))
	engine.NoRoute(pageFallback(cfg.Static.PublicDir))

	return engine
}

// listGameFiles lists the .html game files in a games subdirectory.
func listGameFiles(gamesDir, folder string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := os.ReadDir(filepath.Join(gamesDir, folder))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list game files"})
			return
		}

		files := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
				files = append(files, entry.Name())
			}
		}
		sort.Strings(files)
		c.JSON(http.StatusOK, files)
	}
}

// serveGameFile serves a single game HTML file from a games subdirectory.
func serveGameFile(gamesDir, folder string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// filepath.Base strips any traversal the route parameter smuggled in.
		filename := filepath.Base(c.Param("filename"))
		path := filepath.Join(gamesDir, folder, filename)
		if _, err := os.Stat(path); err != nil {
			c.String(http.StatusNotFound, "game not found")
			return
		}
		c.File(path)
	}
}

// servePage serves a single named page from the public directory.
func servePage(publicDir, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := filepath.Join(publicDir, page+".html")
		if _, err := os.Stat(path); err != nil {
			c.String(http.StatusNotFound, "page not found")
			return
		}
		c.File(path)
	}
}

// pageFallback resolves unmatched GET paths against the public directory:
// /snake maps to public/snake.html, asset paths are served as-is.
func pageFallback(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}

		name := strings.TrimPrefix(c.Request.URL.Path, "/")
		if name == "" || strings.Contains(name, "..") {
			c.String(http.StatusNotFound, "page not found")
			return
		}

		htmlPath := filepath.Join(publicDir, name+".html")
		if info, err := os.Stat(htmlPath); err == nil && !info.IsDir() {
			c.File(htmlPath)
			return
		}

		assetPath := filepath.Join(publicDir, name)
		if info, err := os.Stat(assetPath); err == nil && !info.IsDir() {
			c.File(assetPath)
			return
		}

		c.String(http.StatusNotFound, "page not found")
	}
}
