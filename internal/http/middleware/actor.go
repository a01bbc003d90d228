package middleware

import "github.com/gofiber/fiber/v2"

const (
	// ActorIDHeader carries the id of the user performing the request.
	// Identity verification belongs to the gateway in front of this service;
	// here the header is only propagated so handlers can pass the actor
	// explicitly into the services.
	ActorIDHeader = "X-User-ID"
	// ActorIDLocalKey is the key used to store the actor id in Fiber's context locals.
	ActorIDLocalKey = "actor_id"
)

// Actor stores the X-User-ID header value in context locals for downstream
// handlers. Requests without the header pass through; handlers that need an
// actor reject them individually.
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Get(ActorIDHeader); id != "" {
			c.Locals(ActorIDLocalKey, id)
		}
		return c.Next()
	}
}
