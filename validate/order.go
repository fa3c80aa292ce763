package validate

import (
	"dessert_shop/model"
	"dessert_shop/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, "Validation failed", err)
		}

		// địa chỉ đi kèm thì kiểm luôn ở đây, core không nhận dữ liệu chưa kiểm
		if input.Address != nil {
			if err := validate.Struct(input.Address); err != nil {
				return utils.ErrorResponse(c, 400, "Địa chỉ không hợp lệ", err)
			}
		}

		c.Locals("createInput", input)
		return c.Next()
	}
}
