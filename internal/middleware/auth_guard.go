package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cwngan/cu2m-backend/internal/managers"
	"github.com/cwngan/cu2m-backend/internal/repositories"
	"github.com/cwngan/cu2m-backend/internal/schemas"
	"github.com/cwngan/cu2m-backend/internal/utils"
)

// AuthGuard rejects requests without a valid session. The session only names
// a username, so the guard re-resolves it to a live user row on every
// request; a deleted user is locked out the moment the row is gone.
func AuthGuard(databaseMgr managers.DatabaseMgr, sessionMgr managers.SessionMgr) gin.HandlerFunc {
	userRepo := repositories.NewUserRepository(databaseMgr.GetPool())

	return func(c *gin.Context) {
		username, err := sessionMgr.Resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &schemas.ErrorDTO{Error: *schemas.Unauthorized})
			return
		}

		user, err := userRepo.GetByUsername(c.Request.Context(), username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &schemas.ErrorDTO{Error: *schemas.Unauthorized})
			return
		}

		c.Set(utils.UserKey.String(), user)
		c.Next()
	}
}
