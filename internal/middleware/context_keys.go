package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting user's ID in the request context.
const actorIDKey = contextKey("actorID")

// actorIDHeader carries the acting user's ID, set by the platform gateway
// that authenticates requests upstream of this service.
const actorIDHeader = "X-Actor-ID"

// systemActorID is recorded on audit fields when no actor header is present,
// e.g. for entries generated by automated business-event triggers.
const systemActorID = "system"

// ActorMiddleware resolves the acting user for audit fields.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorIDHeader)
		if actorID == "" {
			actorID = systemActorID
		}
		ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the request context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorID, ok := c.Request.Context().Value(actorIDKey).(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
