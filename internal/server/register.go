package server

import (
	"net/http"

	"github.com/gesticasa/inmosuite/internal/auth/password"
	tenantdomain "github.com/gesticasa/inmosuite/internal/tenant/domain"
	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organizationName"`
}

// Register provisions a tenant directly, bypassing checkout. Only exposed
// when payment gating is off; with gating on the route does not exist.
func (s *Server) Register(c *gin.Context) {
	if s.cfg.PaymentRequired {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.Password == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tenant, err := s.tenantsvc.Provision(c.Request.Context(), tenantdomain.ProvisionRequest{
		Email:            req.Email,
		OrganizationName: req.OrganizationName,
		PasswordHash:     passwordHash,
		Metadata:         map[string]any{"source": "direct_registration"},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subdomain": tenant.Subdomain})
}
