package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the envelope every failing endpoint returns: a stable machine
// code plus a human-readable detail.
type Error struct {
	Code   string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	c.JSON(status, Error{Code: code, Detail: detail})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
