package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONPage is JSONSuccess plus the page that was served.
func JSONPage(c *gin.Context, code int, data interface{}, p Pagination) {
	c.JSON(code, gin.H{
		"success": true,
		"data":    data,
		"page":    p.Page,
		"limit":   p.Limit,
	})
}
