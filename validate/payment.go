package validate

import (
	"dessert_shop/model"
	"dessert_shop/utils"

	"github.com/gofiber/fiber/v2"
)

func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.VerifyPaymentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, "Validation failed", err)
		}

		c.Locals("verifyInput", input)
		return c.Next()
	}
}
