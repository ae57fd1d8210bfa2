package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	api.GET("/candidates", s.listCandidates)

	// The static categories route must register before the :id route.
	api.GET("/races/categories", s.listCategories)
	api.GET("/races", s.listRaces)
	api.GET("/races/:id", s.getRace)

	newsGroup := api.Group("/news")
	newsGroup.GET("", s.listNews)
	newsGroup.GET("/feeds", s.getFeedConfig)
	newsGroup.GET("/featured", s.getFeaturedArticles)
	newsGroup.GET("/fetch-rss", s.fetchRSS)

	financials := api.Group("/financials")
	financials.GET("/candidate/:id", s.getCandidateFinancials)
	financials.GET("/race/:raceFilter", s.getRaceFinancials)

	api.GET("/metadata/last-updated", s.getLastUpdated)
	api.POST("/cache/clear", s.clearCache)
}
