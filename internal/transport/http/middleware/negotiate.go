package middleware

import (
	"github.com/gin-gonic/gin"
)

// WantsHTML reports whether the caller is a browser form or page request
// rather than an API client.
func WantsHTML(c *gin.Context) bool {
	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return true
	case gin.MIMEJSON:
		return false
	}
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}
