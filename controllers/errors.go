package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MohamedBenMassouda/Survey/services"
)

// respondError maps a service failure to an HTTP status. Internal causes are
// logged and never leak past the generic message.
func respondError(c *gin.Context, err error) {
	var domainErr *services.Error
	if errors.As(err, &domainErr) && domainErr.Kind != services.KindInternal {
		payload := gin.H{"message": domainErr.Message}
		if len(domainErr.Details) > 0 {
			payload["details"] = domainErr.Details
		}
		c.JSON(statusFor(domainErr.Kind), payload)
		return
	}

	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "An unexpected error occurred. Please try again later."})
}

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
