package handlers

import (
	"net/http"

	"github.com/nimamdd/medident/internal/middleware"
	"github.com/nimamdd/medident/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the current user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, profileJSON(middleware.CurrentUser(c)))
}

type updateMeRequest struct {
	FullName   *string `json:"fullName"`
	Email      *string `json:"email"`
	NationalID *string `json:"nationalId"`
	City       *string `json:"city"`
	Address    *string `json:"address"`
}

// UpdateMe patches the editable profile fields. Phone and role are not
// editable here; phone is the login identity and role changes are an admin
// concern.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user := middleware.CurrentUser(c)
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.NationalID != nil {
		user.NationalID = *req.NationalID
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Address != nil {
		user.Address = *req.Address
	}

	if err := h.userService.UpdateUser(user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileJSON(user))
}
