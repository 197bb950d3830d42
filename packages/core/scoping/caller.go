package scoping

import (
	"errors"
	"net/http"

	authModels "auth/models"
	"core/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const callerKey = "scifight_caller"

// Caller is the per-request view of the logged-in staff account, resolved
// once by the middleware and passed down to the services.
type Caller struct {
	UserID    uint
	Superuser bool
	// Tournament is the pinned tournament id, nil when the account has no
	// profile or an unpinned profile. Nil means "sees nothing" for
	// non-superusers, never "sees everything".
	Tournament *uint
}

// Middleware resolves the caller from the JWT user id set by the auth layer
// and the account's UserProfile. It must run after auth.JWTMiddleware.
func Middleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		userID := value.(uint)

		var user authModels.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		caller := Caller{UserID: user.ID, Superuser: user.IsSuperuser()}

		if !caller.Superuser {
			var profile models.UserProfile
			err := db.Where("user_id = ?", user.ID).First(&profile).Error
			switch {
			case err == nil:
				caller.Tournament = profile.TournamentID
			case errors.Is(err, gorm.ErrRecordNotFound):
				// no profile: caller stays unpinned and sees nothing
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user profile"})
				c.Abort()
				return
			}
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// FromContext returns the caller resolved by Middleware.
func FromContext(c *gin.Context) (Caller, bool) {
	value, exists := c.Get(callerKey)
	if !exists {
		return Caller{}, false
	}
	caller, ok := value.(Caller)
	return caller, ok
}
