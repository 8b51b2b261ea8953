package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Errors отдает клиенту первую ошибку обработчика. Текст публичных ошибок (gin.ErrorTypePublic) уходит
// как есть, для остальных подставляется текст статуса. Если тело ответа уже записано, ничего не делает.
//
// Формат выбирается по заголовку Accept: json или text/plain, по умолчанию json.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Size() > 0 {
			return
		}

		status := c.Writer.Status()
		msg := strings.ToLower(http.StatusText(status))
		if first := c.Errors[0]; first.IsType(gin.ErrorTypePublic) {
			msg = first.Error()
		}
		if msg == "" || status < http.StatusBadRequest {
			status, msg = http.StatusInternalServerError, "internal server error"
		}

		if c.NegotiateFormat(binding.MIMEJSON, binding.MIMEPlain) == binding.MIMEPlain {
			c.String(status, msg)
		} else {
			c.JSON(status, gin.H{"error": msg})
		}
		c.Abort()
	}
}
