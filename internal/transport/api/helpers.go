package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается в
// middlewares.AuthRequired. Если значения в контексте нет, вернется 0.
func getUserIDFromContext(c *gin.Context) int64 {
	userID, _ := c.Get(middlewares.CurrentUserIDKey)
	id, _ := userID.(int64)
	return id
}

// getActorFromContext текущий юзер вместе с ролью.
func getActorFromContext(c *gin.Context) domain.Actor {
	role, _ := c.Get(middlewares.CurrentUserRoleKey)
	roleType, _ := role.(domain.RoleType)
	return domain.Actor{UserID: getUserIDFromContext(c), Role: roleType}
}

// bindJSON разбирает тело запроса. Ошибки валидации отдаются как 422 со списком полей, прочие - 400.
func bindJSON(c *gin.Context, params any) bool {
	return bindWith(c, params, binding.JSON)
}

func bindWith(c *gin.Context, params any, b binding.Binding) bool {
	bindErr := c.ShouldBindWith(params, b)
	if bindErr == nil {
		return true
	}
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		fields := make(map[string]string, len(valErrs))
		for _, fe := range valErrs {
			fields[fe.Field()] = fe.Tag()
		}
		_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields})
		return false
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
	return false
}

// pathID разбирает положительный числовой параметр пути name. При ошибке отвечает 404.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

// abortWithServiceError переводит ошибку сервисного слоя в http ответ.
func abortWithServiceError(c *gin.Context, err error) {
	var rejection *domain.RejectionError
	switch {
	case errors.As(err, &rejection):
		_ = c.AbortWithError(http.StatusUnprocessableEntity, errors.New(rejection.Reason)).
			SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrForbidden):
		_ = c.AbortWithError(http.StatusForbidden, err).SetType(gin.ErrorTypePrivate)
	case errors.Is(err, domain.ErrRecordNotFound):
		_ = c.AbortWithError(http.StatusNotFound, err).SetType(gin.ErrorTypePrivate)
	case errors.Is(err, domain.ErrValueOutOfRange):
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "value out of range"})
	case errors.Is(err, domain.ErrDuplicateKey):
		_ = c.AbortWithError(http.StatusConflict, err).SetType(gin.ErrorTypePrivate)
	case errors.Is(err, domain.ErrPasswordMissMatch):
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, context.DeadlineExceeded):
		_ = c.AbortWithError(http.StatusServiceUnavailable, err).SetType(gin.ErrorTypePrivate)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
