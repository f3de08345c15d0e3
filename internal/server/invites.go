package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	invitedomain "github.com/gesticasa/inmosuite/internal/invite/domain"
	"github.com/gin-gonic/gin"
)

type InviteAgentRequest struct {
	Email string `json:"email"`
}

type ActivateInviteRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (s *Server) InviteAgent(c *gin.Context) {
	tenantID, ok := c.Get(contextTenantIDKey)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req InviteAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	_, err := s.invitesvc.Invite(c.Request.Context(), invitedomain.InviteRequest{
		TenantID: tenantID.(snowflake.ID),
		Email:    req.Email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ActivateInvite(c *gin.Context) {
	var req ActivateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.invitesvc.Activate(c.Request.Context(), invitedomain.ActivateRequest{
		Token:    req.Token,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
