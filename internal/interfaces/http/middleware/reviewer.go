package middleware

import (
	"net/http"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/logger"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewerIDHeader identifies the accountant acting on a request.
// Review and close operations record this identity on the receipt or month.
const ReviewerIDHeader = "X-Reviewer-ID"

// ReviewerIDContextKey is the gin context key holding the parsed reviewer ID
const ReviewerIDContextKey = "reviewer_id"

// ReviewerID extracts the reviewer identity when present and threads it
// into the request context for log correlation. It does not reject
// requests; handlers that need a reviewer use RequireReviewer.
func ReviewerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ReviewerIDHeader)
		if raw == "" {
			c.Next()
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeBadRequest,
				"Invalid reviewer ID",
			))
			return
		}

		c.Set(ReviewerIDContextKey, id)
		reqCtx := c.Request.Context()
		ctx, _ := logger.WithReviewerID(reqCtx, logger.FromContext(reqCtx), id.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireReviewer rejects requests that did not present a reviewer identity
func RequireReviewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetReviewerID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"Reviewer identity required",
			))
			return
		}
		c.Next()
	}
}

// GetReviewerID returns the reviewer ID set by ReviewerID, if any
func GetReviewerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ReviewerIDContextKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
