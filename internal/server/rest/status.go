package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.status.Alive(c.Request.Context()))
}

func (s *Server) getStats(c *gin.Context) {
	stats, err := s.status.Stats(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
