package handler

import (
	"net/http"

	"expense-ledger/internal/service"
	"expense-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	Users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// ---------- register ----------

func (h *AuthHandler) Register(c *gin.Context) {
	var req util.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	in, err := util.ParseRegisterInput(req)
	if err != nil {
		fail(c, err)
		return
	}

	user, err := h.Users.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	util.JSON(c, http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// ---------- login ----------

func (h *AuthHandler) Login(c *gin.Context) {
	var req util.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	email, password := util.ParseLoginInput(req)
	token, err := h.Users.Login(c.Request.Context(), email, password)
	if err != nil {
		fail(c, err)
		return
	}

	util.JSON(c, http.StatusOK, gin.H{"token": token})
}
