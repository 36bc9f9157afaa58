// Package fiberresp writes resolved responses through fiber contexts.
package fiberresp

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ehabterra/enumresp/resp"
)

// Send writes r to the fiber context. Empty bodies send only the status;
// everything else goes out as application/json.
func Send(c *fiber.Ctx, r resp.Response) error {
	c.Status(r.Status)
	if len(r.Body) == 0 {
		return nil
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(r.Body)
}
