package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/user/aifilm/internal/middleware"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/utils"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and signs the caller in.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Geçersiz kayıt bilgileri.")
		return
	}

	if existing, err := h.repos.User.FindByUsername(req.Username); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	} else if existing != nil {
		utils.BadRequest(c, "Kullanıcı adı zaten mevcut.")
		return
	}

	if existing, err := h.repos.User.FindByEmail(req.Email); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	} else if existing != nil {
		utils.BadRequest(c, "Bu e-posta adresi zaten kayıtlı.")
		return
	}

	user, err := h.repos.User.Create(req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "Kullanıcı adı zaten mevcut.")
			return
		}
		log.Error("register failed", "err", err)
		utils.InternalServerError(c, err.Error())
		return
	}

	h.issueSession(c, user)
	c.JSON(http.StatusCreated, user)
}

// Login checks the credentials and issues the token cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Kullanıcı adı ve şifre gerekli.")
		return
	}

	user, err := h.repos.User.FindByUsername(req.Username)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if user == nil || !h.repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "Kullanıcı adı veya şifre hatalı.")
		return
	}

	token := h.issueSession(c, user)
	c.JSON(http.StatusOK, gin.H{
		"access": token,
		"user":   user,
	})
}

// Refresh reissues the token for the authenticated caller.
func (h *Handler) Refresh(c *gin.Context) {
	user, err := h.repos.User.FindByID(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if user == nil {
		utils.Unauthorized(c, "")
		return
	}

	token := h.issueSession(c, user)
	c.JSON(http.StatusOK, gin.H{"access": token})
}

// Logout clears the cookie and the server-side session.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Warn("session clear failed", "err", err)
	}
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"detail": "Çıkış yapıldı."})
}

// Profile returns the authenticated user.
func (h *Handler) Profile(c *gin.Context) {
	user, err := h.repos.User.FindByID(middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if user == nil {
		utils.NotFound(c, "")
		return
	}
	c.JSON(http.StatusOK, user)
}

// issueSession signs a token, sets the cookie and stores the session user.
func (h *Handler) issueSession(c *gin.Context, user *model.User) string {
	token, err := middleware.GenerateToken(user.ID, user.Username, user.Role, h.cfg.AppSecret, h.cfg.JWTExpiry)
	if err != nil {
		log.Error("token generation failed", "err", err)
		return ""
	}

	c.SetCookie("token", token, int(h.cfg.JWTExpiry.Seconds()), "/", "", false, true)

	session := sessions.Default(c)
	session.Set("user", model.SessionUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	})
	if err := session.Save(); err != nil {
		log.Warn("session save failed", "err", err)
	}
	return token
}
