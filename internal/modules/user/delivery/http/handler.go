package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/course-library/internal/middleware"
	"github.com/openlearn/course-library/internal/modules/user/dto"
	user "github.com/openlearn/course-library/internal/modules/user/service"
	"github.com/openlearn/course-library/pkg/ratelimiter"
	"github.com/openlearn/course-library/pkg/response"
	"github.com/openlearn/course-library/pkg/validator"
)

type AuthHandler struct {
	service      user.AuthService
	cookieSecure bool
}

func NewAuthHandler(service user.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": resp})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	resp, signed, expiresAt, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		var rateLimitErr *ratelimiter.RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{"message": rateLimitErr.Message})
			return
		}
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, signed, int(time.Until(expiresAt).Seconds()))
	c.JSON(http.StatusOK, gin.H{"user": resp})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	// Client-side invalidation only: the cookie is expired, the token itself
	// stays valid until its expiry.
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	claim, err := response.GetClaim(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.Me(c.Request.Context(), claim.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": resp})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, value, maxAge, "/", "", h.cookieSecure, true)
}
