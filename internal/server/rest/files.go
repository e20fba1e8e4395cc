package rest

import (
	"net/http"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/gin-gonic/gin"
)

type uploadRequest struct {
	Name     string           `json:"name"`
	Type     string           `json:"type"`
	ParentID models.ParentRef `json:"parentId"`
	IsPublic bool             `json:"isPublic"`
	Data     string           `json:"data"`
}

func (s *Server) postUpload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, common.ErrInvalidData)
		return
	}

	rec, err := s.files.Upload(c.Request.Context(), currentUser(c), services.UploadRequest{
		Name:     req.Name,
		Type:     req.Type,
		Parent:   req.ParentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec.View())
}

func (s *Server) getShow(c *gin.Context) {
	rec, err := s.files.Show(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec.View())
}

func (s *Server) getIndex(c *gin.Context) {
	recs, err := s.files.List(c.Request.Context(), currentUser(c), models.InFolder(c.Query("parentId")))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	views := []models.FileView{}
	for rec := range recs {
		views = append(views, rec.View())
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) putPublish(c *gin.Context)   { s.setPublish(c, true) }
func (s *Server) putUnpublish(c *gin.Context) { s.setPublish(c, false) }

func (s *Server) setPublish(c *gin.Context, isPublic bool) {
	rec, err := s.files.SetPublish(c.Request.Context(), currentUser(c), c.Param("id"), isPublic)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec.View())
}

func (s *Server) getFile(c *gin.Context) {
	content, err := s.files.Download(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, content.MimeType, content.Data)
}
