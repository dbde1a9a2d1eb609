package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/model"
	"github.com/navbryce/heddit-be/util"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

// TokenVerifier is satisfied by *auth.Client
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthConfig struct {
	// SessionNotRequired lets anonymous requests through (read paths)
	SessionNotRequired bool
	// AppAccountNotRequired lets a valid token without a local profile through
	AppAccountNotRequired bool
}

// GenAuth verifies the bearer token and loads the local profile of its owner
func GenAuth(userDB db.UserDatabase, verifier TokenVerifier, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader := c.GetHeader("Authorization")
		if authorizationHeader == "" {
			if config.SessionNotRequired {
				return
			}
			abort(c, http.StatusUnauthorized, "no authorization header")
			return
		}
		if !strings.HasPrefix(authorizationHeader, "Bearer ") || len(authorizationHeader) < 8 {
			if config.SessionNotRequired {
				return
			}
			abort(c, http.StatusUnauthorized, "incorrectly formatted authorization header")
			return
		}
		token, err := verifier.VerifyIDToken(c, authorizationHeader[7:])
		if err != nil {
			if config.SessionNotRequired {
				return
			}
			abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set(TOKEN_KEY, token)

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			util.HandleHTTPErrorRes(c, util.BuildDbHTTPErr(err))
			return
		}
		if user == nil {
			if config.AppAccountNotRequired || config.SessionNotRequired {
				return
			}
			abort(c, http.StatusForbidden, "must have a user profile")
			return
		}
		c.Set(USER_KEY, user)
	}
}

// RequireAccount rejects requests that GenAuth let through without a session or profile
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, hasToken := c.Get(TOKEN_KEY); !hasToken {
			abort(c, http.StatusUnauthorized, "must be logged in")
			return
		}
		if GetUserMaybe(c) == nil {
			abort(c, http.StatusForbidden, "must have a user profile")
		}
	}
}

func abort(c *gin.Context, status int, message string) {
	util.HandleHTTPErrorRes(c, &util.HTTPError{Status: status, Message: message})
}

func MustGetToken(c *gin.Context) *auth.Token {
	return c.MustGet(TOKEN_KEY).(*auth.Token)
}

func MustGetUser(c *gin.Context) *model.User {
	return c.MustGet(USER_KEY).(*model.User)
}

// GetUserMaybe returns nil for anonymous requests
func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}
