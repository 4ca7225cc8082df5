package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting caller's ID in the context.
const actorIDKey = contextKey("actorID")

// ActorIDHeader identifies the caller on whose behalf a write is made.
// Callers are trusted collaborators; the header attributes audit fields,
// it does not authenticate.
const ActorIDHeader = "X-Actor-ID"

// DefaultActorID is recorded when a caller sends no actor header.
const DefaultActorID = "system"

// ActorMiddleware extracts the actor ID from the request header and stores it
// in the context, enriching the request logger with it.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorIDHeader)
		if actorID == "" {
			actorID = DefaultActorID
		}

		c.Set(string(actorIDKey), actorID)

		enrichedLogger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("actor_id", actorID))
		ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting caller's ID from the Gin context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(actorIDKey)
		if ctxVal != nil {
			return ctxVal.(string), true
		}
		return "", false
	}

	actorID, ok := actorIDVal.(string)
	if !ok {
		return "", false
	}

	return actorID, true
}
