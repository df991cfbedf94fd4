package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/course-library/internal/policy"
	"github.com/openlearn/course-library/pkg/apperror"
)

// ClaimKey is the gin context key under which the auth middleware stores the
// resolved identity claim.
const ClaimKey = "claim"

// GetClaim retrieves the authenticated identity claim from the context.
func GetClaim(c *gin.Context) (*policy.Claim, error) {
	value, exists := c.Get(ClaimKey)
	if !exists {
		return nil, apperror.Unauthorized(policy.MsgAuthRequired)
	}

	claim, ok := value.(*policy.Claim)
	if !ok || claim == nil {
		return nil, apperror.Unauthorized(policy.MsgAuthRequired)
	}

	return claim, nil
}

// OptionalClaim returns the identity claim when one was resolved, or nil for
// anonymous callers.
func OptionalClaim(c *gin.Context) *policy.Claim {
	claim, err := GetClaim(c)
	if err != nil {
		return nil
	}
	return claim
}

// Error writes a standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		// Log internal errors, never surface them
		log.Printf("[Internal Error]: %v", err)
		message = apperror.ErrInternal.Error()
	}

	c.JSON(code, gin.H{"message": message})
}
