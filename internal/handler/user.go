package handler

import (
	"net/http"
	"time"

	"expense-ledger/internal/models"
	"expense-ledger/internal/service"
	"expense-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile reads, updates and account deletion.
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

type userResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResp(u *models.User) userResp {
	return userResp{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	util.JSON(c, http.StatusOK, toUserResp(user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req util.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	in, err := util.ParseUpdateUserInput(req)
	if err != nil {
		fail(c, err)
		return
	}

	user, err := h.Users.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.JSON(c, http.StatusOK, toUserResp(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
