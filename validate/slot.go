package validate

import (
	"dessert_shop/constants"
	"dessert_shop/model"
	"dessert_shop/utils"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

func CreateSlot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateSlotInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, "Validation failed", err)
		}

		if !utils.IsValidMMYYYY(input.Month) {
			return utils.ErrorResponse(c, 400, "Tháng sai định dạng MM-YYYY", nil)
		}

		parseDate := func(s string) utils.CustomDate {
			t, _ := time.Parse("2006-01-02", s) // đã qua validator datetime
			return utils.CustomDate{Time: t}
		}

		c.Locals("createInput", model.PostalOrderSlot{
			Name:          input.Name,
			Month:         input.Month,
			OrderStart:    parseDate(input.OrderStart),
			OrderEnd:      parseDate(input.OrderEnd),
			DispatchStart: parseDate(input.DispatchStart),
			DispatchEnd:   parseDate(input.DispatchEnd),
		})

		return c.Next()
	}
}

func UpdateSlot(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateSlotInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, "Validation failed", err)
		}

		if input.Month != nil && !utils.IsValidMMYYYY(*input.Month) {
			return utils.ErrorResponse(c, 400, "Tháng sai định dạng MM-YYYY", nil)
		}

		c.Locals("updateInput", input)
		c.Locals("slotId", valueKey)
		return c.Next()
	}
}
