package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seller-crm/internal/application/crm"
)

// scopeFrom arma el alcance del vendedor: usuario del token y business_id opcional de la query.
func scopeFrom(c *fiber.Ctx) crm.Scope {
	return crm.Scope{SellerID: GetUserID(c), BusinessID: c.Query("business_id")}
}
