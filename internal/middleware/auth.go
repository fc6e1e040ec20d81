package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/services"
)

// AuthMiddleware resolves the bearer token to a live session and puts it on
// the request context. Handlers read it with auth.FromContext.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			appErrors.HandleError(c, appErrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		db := dbFrom(c)
		session, err := authService.Authenticate(db, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "authentication failed", "error", err.Error())
			appErrors.HandleError(c, appErrors.FromError(err))
			return
		}

		ctx := auth.WithSession(c.Request.Context(), session)
		ctx = logger.WithUserID(ctx, session.UserID)
		c.Request = c.Request.WithContext(ctx)
		// The db handle must carry the new context too.
		setDB(c, db.WithContext(ctx))

		c.Next()
	}
}

// RequirePermission rejects sessions whose user type lacks perm.
func RequirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := auth.FromContext(c.Request.Context())
		if !ok {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			return
		}
		if !auth.HasPermission(session.UserType(), perm) {
			logger.CtxWarn(c.Request.Context(), "permission denied",
				"permission", perm,
				"user_type", session.UserType(),
			)
			appErrors.HandleError(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
