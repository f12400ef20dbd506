package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/triptrizz/triptrizz-server/internal/errs"
)

func respondError(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), gin.H{"error": errs.UserMessage(err)})
}

func pagination(c *gin.Context) (int, int) {
	offset := 0
	limit := 20
	query := struct {
		Offset int `form:"offset"`
		Limit  int `form:"limit"`
	}{}
	if err := c.ShouldBindQuery(&query); err == nil {
		offset = query.Offset
		limit = query.Limit
	}
	if offset < 0 {
		offset = 0
	}
	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 20
	}
	return offset, limit
}
