package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/service"
	"github.com/gin-gonic/gin"
)

// dateLayout формат дат в запросах и ответах.
const dateLayout = time.DateOnly

type AuthHandler struct {
	userService UserServicer
}

func NewAuthHandler(userService UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type AddressParams struct {
	Street     string `binding:"required,max_bytes=255"   json:"street"`
	City       string `binding:"required,max_bytes=100"   json:"city"`
	PostalCode int32  `binding:"required,min=1"           json:"postal_code"`
	Country    string `binding:"required,max_bytes=100"   json:"country"`
}

func (a AddressParams) toArgs() service.AddressArgs {
	return service.AddressArgs{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

type UserRegisterParams struct {
	Username    string        `binding:"required,min=1,max=150"              json:"login"`
	Password    string        `binding:"required,min=6,max_bytes=72"         json:"password"`
	Email       string        `binding:"required,email,max_bytes=254"        json:"email"`
	FirstName   string        `binding:"required,max_bytes=150"              json:"first_name"`
	LastName    string        `binding:"required,max_bytes=150"              json:"last_name"`
	AccountType string        `binding:"required,oneof=Savings Current"      json:"account_type"`
	Gender      string        `binding:"required,oneof=Male Female"          json:"gender"`
	BirthDate   string        `binding:"omitempty,datetime=2006-01-02"       json:"birth_date"`
	Address     AddressParams `binding:"required"                            json:"address"`
}

// Register POST RouteGroup + RegisterRoute. Регистрирует пользователя, открывает ему счет и аутентифицирует.
func (h *AuthHandler) Register(c *gin.Context) {
	var params UserRegisterParams
	if !bindJSON(c, &params) {
		return
	}

	var birthDate *time.Time
	if params.BirthDate != "" {
		// формат уже проверен тегом datetime.
		d, _ := time.Parse(dateLayout, params.BirthDate)
		birthDate = &d
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	profile, jwtToken, createErr := h.userService.Register(ctx, service.RegisterUserArgs{
		Username:    params.Username,
		Password:    params.Password,
		Email:       params.Email,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		AccountType: domain.AccountType(params.AccountType),
		BirthDate:   birthDate,
		Gender:      domain.GenderType(params.Gender),
		Address:     params.Address.toArgs(),
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("user with this login already exists")).
				SetType(gin.ErrorTypePublic)
			return
		}
		abortWithServiceError(c, createErr)
		return
	}

	c.Header("Authorization", "Bearer "+jwtToken)
	c.JSON(http.StatusCreated, newProfileResponse(profile))
}

type UserLoginParams struct {
	Username string `binding:"required,min=1,max=150" json:"login"`
	Password string `binding:"required,min=1"         json:"password"`
}

type UserResponse struct {
	ID        int64           `json:"id"`
	Username  string          `json:"login"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      domain.RoleType `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// Login POST RouteGroup + LoginRoute. Аутентификация по паре логин/пароль.
func (h *AuthHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, token, err := h.userService.Login(ctx, params.Username, params.Password)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) || errors.Is(err, domain.ErrPasswordMissMatch) {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		abortWithServiceError(c, err)
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}
