package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"core/apperr"
	"core/scoping"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP responses: validation failures
// become a 400 with a field -> message map, scoping violations a 403, and
// missing records a 404.
func respondError(c *gin.Context, err error) {
	var fieldErrs apperr.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs.Map()})
	case errors.Is(err, apperr.ErrNoTournament), errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// callerFrom aborts with a 401 when the scoping middleware did not run.
func callerFrom(c *gin.Context) (scoping.Caller, bool) {
	caller, ok := scoping.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return caller, ok
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func paginationParams(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 10

	if pageParam := c.Query("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}
	if sizeParam := c.Query("pageSize"); sizeParam != "" {
		if ps, err := strconv.Atoi(sizeParam); err == nil && ps > 0 && ps <= 100 {
			pageSize = ps
		}
	}
	return page, pageSize
}

func optionalUintQuery(c *gin.Context, name string) *uint {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(v)
			return &id
		}
	}
	return nil
}
