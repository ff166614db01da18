package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-talent-marketplace/pkg/apperror"
	"github.com/oksasatya/go-talent-marketplace/pkg/response"
	"github.com/oksasatya/go-talent-marketplace/pkg/validation"
)

type errorDetail struct {
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

// writeError renders any service error with its mapped status.
// Errors that carry no client message are logged and answered with a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		ae = apperror.NewInternal(err)
		if logger != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unhandled error")
		}
	}
	response.Error(c, ae.StatusCode(), ae.Message, errorDetail{Kind: ae.Kind.String(), Field: ae.Field})
}

// bindJSON decodes the body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, logger *logrus.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, logger, apperror.NewValidation("payload", validation.DecodeMessage(err)))
		return false
	}
	return true
}
