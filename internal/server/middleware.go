package server

import (
	"github.com/gin-gonic/gin"
)

const (
	contextTenantIDKey    = "tenant_id"
	contextTenantEmailKey = "tenant_email"
)

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextTenantIDKey, session.TenantID)
		c.Set(contextTenantEmailKey, session.TenantEmail)
		c.Next()
	}
}
