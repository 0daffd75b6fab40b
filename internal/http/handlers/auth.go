package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/seqmeta-backend/internal/http/response"
	"github.com/yungbote/seqmeta-backend/internal/platform/apierr"
	"github.com/yungbote/seqmeta-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apierr.BadRequest("invalid_request", err))
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": res.AccessToken,
		"token_type":   res.TokenType,
		"expires_at":   res.ExpiresAt,
		"expires_in":   int(ah.authService.GetAccessTTL().Seconds()),
	})
}
