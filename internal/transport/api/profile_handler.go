package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/service"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userService UserServicer
}

func NewProfileHandler(userService UserServicer) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
	}
}

type AddressResponse struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode int32  `json:"postal_code"`
	Country    string `json:"country"`
}

type ProfileResponse struct {
	User    UserResponse     `json:"user"`
	Account AccountResponse  `json:"account"`
	Address *AddressResponse `json:"address,omitempty"`
}

func newProfileResponse(p *service.Profile) ProfileResponse {
	resp := ProfileResponse{
		User:    newUserResponse(p.User),
		Account: newAccountResponse(p.Account),
	}
	if p.Address != nil {
		resp.Address = newAddressResponse(p.Address)
	}
	return resp
}

func newAddressResponse(a *domain.Address) *AddressResponse {
	return &AddressResponse{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// Show GET RouteGroup + ProfileRoute.
func (h *ProfileHandler) Show(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, err := h.userService.GetProfile(reqCtx, getUserIDFromContext(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

type UpdateProfileParams struct {
	Email     string        `binding:"required,email,max_bytes=254" json:"email"`
	FirstName string        `binding:"required,max_bytes=150"       json:"first_name"`
	LastName  string        `binding:"required,max_bytes=150"       json:"last_name"`
	Address   AddressParams `binding:"required"                     json:"address"`
}

// Update PUT RouteGroup + ProfileRoute. Перезаписывает контактные данные и адрес.
func (h *ProfileHandler) Update(c *gin.Context) {
	var params UpdateProfileParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, err := h.userService.UpdateProfile(reqCtx, getUserIDFromContext(c), service.UpdateProfileArgs{
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Address:   params.Address.toArgs(),
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

type ChangePasswordParams struct {
	OldPassword string `binding:"required"                                  json:"old_password"`
	NewPassword string `binding:"required,min=6,max_bytes=72,nefield=OldPassword" json:"new_password"`
}

// ChangePassword POST RouteGroup + PasswordRoute.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var params ChangePasswordParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.userService.ChangePassword(reqCtx, getUserIDFromContext(c), params.OldPassword,
		params.NewPassword); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
