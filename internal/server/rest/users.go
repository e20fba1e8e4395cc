package rest

import (
	"net/http"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) postUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, common.ErrInvalidData)
		return
	}

	u, err := s.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u.View())
}

func (s *Server) getMe(c *gin.Context) {
	u, err := s.auth.Me(c.Request.Context(), c.GetHeader(common.TokenHeaderName))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.View())
}

func (s *Server) getConnect(c *gin.Context) {
	token, err := s.auth.Login(c.Request.Context(), c.GetHeader(common.AuthorizationHeaderName))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) getDisconnect(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context(), c.GetHeader(common.TokenHeaderName)); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
