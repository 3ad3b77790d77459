package middleware

import (
	"strings"

	"github.com/PsySom/ready-set-prompt/internal/apierror"
	"github.com/PsySom/ready-set-prompt/internal/logger"
	"github.com/PsySom/ready-set-prompt/pkg/supabase"
	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves a bearer token to a user. The Supabase client
// satisfies this; test doubles can stand in for it.
type TokenVerifier interface {
	VerifyToken(token string) (*supabase.User, error)
}

// Auth middleware to verify JWT tokens
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug("authentication failed: missing authorization header")
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Debug("authentication failed: invalid authorization format")
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
			c.Abort()
			return
		}

		token := parts[1]

		// Verify token with Supabase
		user, err := verifier.VerifyToken(token)
		if err != nil {
			log.Warn("authentication failed: token verification error",
				logger.Err(err),
			)
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
			c.Abort()
			return
		}

		// Set user in context
		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Set("user_token", token) // Store JWT token for RLS

		// Add user ID to request context for logging
		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		log.Debug("authentication successful",
			logger.String("user_id", user.ID),
			logger.String("user_email", user.Email),
		)

		c.Next()
	}
}

// LocalAuth identifies the caller from the X-User-ID header. It is only
// for the self-hosted sqlite setup where there is no identity provider;
// never enable it on a deployment reachable from the open internet.
func LocalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
			c.Abort()
			return
		}

		c.Set("user_id", userID)

		ctx := logger.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
