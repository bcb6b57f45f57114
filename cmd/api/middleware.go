package main

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Joan938/holbertonschool-hbnb/auth"
	"github.com/Joan938/holbertonschool-hbnb/facade"
)

const identityKey = "identity"

// identify resolves the bearer token, if any, into the caller identity.
// Requests without a token continue anonymously; the facade decides whether
// the operation needs a caller.
func (s *Server) identify(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.Set(identityKey, facade.Identity{})
		c.Next()
		return
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		s.abort(c, auth.ErrInvalidToken)
		return
	}

	identity, err := s.auth.VerifyToken(strings.TrimSpace(token))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.Set(identityKey, identity)
	c.Next()
}

func caller(c *gin.Context) facade.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(facade.Identity); ok {
			return id
		}
	}
	return facade.Identity{}
}
