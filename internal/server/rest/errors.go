package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorTable is matched in order with errors.Is.
var errorTable = []errorMapping{
	{common.ErrMissingName, http.StatusBadRequest, "Missing name"},
	{common.ErrMissingType, http.StatusBadRequest, "Missing type"},
	{common.ErrMissingData, http.StatusBadRequest, "Missing data"},
	{common.ErrInvalidData, http.StatusBadRequest, "Invalid data"},
	{common.ErrParentNotFound, http.StatusBadRequest, "Parent not found"},
	{common.ErrParentNotFolder, http.StatusBadRequest, "Parent is not a folder"},
	{common.ErrInvalidParent, http.StatusBadRequest, "Invalid parent"},
	{common.ErrStorageWriteFailed, http.StatusBadRequest, "Cannot write file"},
	{common.ErrNotAFile, http.StatusBadRequest, "A folder doesn't have content"},
	{common.ErrMissingEmail, http.StatusBadRequest, "Missing email"},
	{common.ErrMissingPassword, http.StatusBadRequest, "Missing password"},
	{common.ErrorAlreadyExists, http.StatusBadRequest, "Already exist"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{common.ErrorNotFound, http.StatusNotFound, "Not found"},
	{common.ErrServiceUnavailable, http.StatusServiceUnavailable, "Service unavailable"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal error"
}

// abortWithError writes {"error": message} and stops the chain. Server-side
// failures are logged; client errors are not.
func (s *Server) abortWithError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
