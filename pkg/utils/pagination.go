package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt reads an integer query parameter, falling back to def when
// the parameter is absent.
func QueryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// PageParams reads the from/size pagination parameters with the
// defaults of the listing endpoints.
func PageParams(c *gin.Context) (from, size int, err error) {
	from, err = QueryInt(c, "from", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err = QueryInt(c, "size", 10)
	if err != nil {
		return 0, 0, err
	}
	return from, size, nil
}
