// Package echoresp writes resolved responses through labstack/echo contexts.
// This is the default adapter emitted by the generator.
package echoresp

import (
	"github.com/labstack/echo/v4"

	"github.com/ehabterra/enumresp/resp"
)

// Send writes r to the echo context. Empty bodies send only the status;
// everything else goes out as application/json.
func Send(c echo.Context, r resp.Response) error {
	if len(r.Body) == 0 {
		return c.NoContent(r.Status)
	}
	return c.JSONBlob(r.Status, r.Body)
}
