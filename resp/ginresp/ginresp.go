// Package ginresp writes resolved responses through gin contexts.
package ginresp

import (
	"github.com/gin-gonic/gin"

	"github.com/ehabterra/enumresp/resp"
)

// Send writes r to the gin context. Empty bodies send only the status;
// everything else goes out as application/json.
func Send(c *gin.Context, r resp.Response) {
	if len(r.Body) == 0 {
		c.Status(r.Status)
		return
	}
	c.Data(r.Status, "application/json", r.Body)
}
