// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sympmatch/sympmatch/internal/logger"
)

// RouterConfig bundles the handlers the router wires up.
type RouterConfig struct {
	Diseases *DiseaseHandler
	Search   *SearchHandler
	Analyze  *AnalyzeHandler
	Sessions *SessionHandler
	Log      *logger.Logger
}

// NewRouter builds the gin engine with middleware and all routes attached.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORS())
	router.Use(RequestID())
	router.Use(RequestLogger(cfg.Log))

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := router.Group("/api")
	{
		api.GET("/diseases", cfg.Diseases.List)
		api.POST("/diseases", cfg.Diseases.Create)
		api.GET("/diseases/:id", cfg.Diseases.Get)
		api.PUT("/diseases/:id", cfg.Diseases.Update)
		api.DELETE("/diseases/:id", cfg.Diseases.Delete)
		// Query-string forms: PUT/DELETE /api/diseases?id=
		api.PUT("/diseases", cfg.Diseases.Update)
		api.DELETE("/diseases", cfg.Diseases.Delete)

		api.POST("/diseases/search", cfg.Search.Search)

		api.POST("/analyze", cfg.Analyze.Analyze)
		api.POST("/analyze/voice", cfg.Analyze.AnalyzeVoice)

		api.GET("/searches", cfg.Sessions.ListSearches)
		api.DELETE("/searches", cfg.Sessions.DeleteSearch)
		api.POST("/notes", cfg.Sessions.AddNote)
		api.GET("/notes", cfg.Sessions.ListNotes)
	}

	return router
}
