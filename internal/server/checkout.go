package server

import (
	"net/http"

	checkoutdomain "github.com/gesticasa/inmosuite/internal/checkout/domain"
	"github.com/gin-gonic/gin"
)

type CreateCheckoutSessionRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organizationName"`
}

func (s *Server) CreateCheckoutSession(c *gin.Context) {
	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.checkoutsvc.CreateSession(c.Request.Context(), checkoutdomain.Request{
		Email:            req.Email,
		Password:         req.Password,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": result.RedirectURL})
}
