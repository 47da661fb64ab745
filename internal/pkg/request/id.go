package request

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oxanatr/shareit-backend/internal/pkg/apperror"
)

// IDParam parses the named path parameter as an int64 identifier.
func IDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("invalid " + name)
	}
	return id, nil
}
