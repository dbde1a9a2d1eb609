package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/middleware"
)

// Guards are the middleware chains shared by every route group
type Guards struct {
	// Session authenticates when a token is present but lets anonymous reads through
	Session gin.HandlerFunc
	// Write requires a profile and applies rate limiting
	Write []gin.HandlerFunc
}

// NewGuards builds the guards. A nil rateLimiter disables rate limiting.
func NewGuards(userDB db.UserDatabase, verifier middleware.TokenVerifier, rateLimiter gin.HandlerFunc) *Guards {
	write := []gin.HandlerFunc{middleware.RequireAccount()}
	if rateLimiter != nil {
		write = append(write, rateLimiter)
	}
	return &Guards{
		Session: middleware.GenAuth(userDB, verifier, &middleware.AuthConfig{SessionNotRequired: true}),
		Write:   write,
	}
}

func (g *Guards) writing(handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(g.Write)+1)
	chain = append(chain, g.Write...)
	return append(chain, handler)
}
