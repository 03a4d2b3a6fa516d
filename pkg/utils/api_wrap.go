package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	RespondErrorWithData(c, code, message, nil)
}

func RespondErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

// HandleServiceError maps service errors onto the HTTP envelope. Catalog and
// persistence errors are blocking; validation problems are returned itemized.
func HandleServiceError(c *gin.Context, err error) {
	var validation *ValidationError

	switch {
	case errors.As(err, &validation):
		RespondErrorWithData(c, http.StatusUnprocessableEntity, "Please answer all required questions",
			gin.H{"problems": validation.Problems})
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Survey session not found or expired")
	case errors.Is(err, ErrConsentRequired):
		RespondError(c, http.StatusConflict, "Consent is required before continuing")
	case errors.Is(err, ErrStepMismatch):
		RespondError(c, http.StatusConflict, "This step is not the current survey step")
	case errors.Is(err, ErrInvalidTransition):
		RespondError(c, http.StatusConflict, "This action is not available at the current survey step")
	case errors.Is(err, ErrCatalogUnavailable):
		zap.S().Errorw("catalog unavailable", "error", err)
		RespondError(c, http.StatusServiceUnavailable, "POI data is not available, the survey cannot continue")
	case errors.Is(err, ErrPersistence):
		zap.S().Errorw("persistence failure", "error", err)
		RespondError(c, http.StatusInternalServerError, "Your responses could not be saved, please try again")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrMirrorDisabled):
		RespondError(c, http.StatusServiceUnavailable, "Response database is not configured")
	case errors.Is(err, ErrDatabaseError):
		zap.S().Errorw("database error", "error", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.S().Errorw("unknown error", "error", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
