package handler

import (
	"context"
	"dessert_shop/constants"
	"dessert_shop/database"
	"dessert_shop/helper"
	"dessert_shop/model"
	"dessert_shop/utils"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetSlots(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.PostalOrderSlot{})
	if month := c.Query("month"); month != "" {
		if !utils.IsValidMMYYYY(month) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tháng sai định dạng MM-YYYY", nil)
		}
		query = query.Where("month = ?", month)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var totalCount int64
	query.Count(&totalCount)

	limit := c.QueryInt("limit", 0)
	page := c.QueryInt("page", 0)
	if limit > 0 && page >= 1 {
		query = utils.ApplyPagination(query, &limit, &page)
	}

	var slots []model.PostalOrderSlot
	if err := query.Order("order_start asc").Find(&slots).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải danh sách đợt", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       slots,
		TotalCount: totalCount,
	})
}

func GetSlotById(c *fiber.Ctx) error {
	slotId := c.Locals("inputId").(int)

	var slot model.PostalOrderSlot
	if err := database.DB.First(&slot, slotId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SLOT_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, slot)
}

// GetUpcomingSlot cho storefront: đợt sắp mở gần nhất, ưu tiên cache Redis
func GetUpcomingSlot(c *fiber.Ctx) error {
	if database.Redis != nil {
		if cached, err := database.Redis.Get(context.Background(), "banner:upcoming_slot").Result(); err == nil {
			c.Set("Content-Type", "application/json")
			return c.SendString(`{"status":"success","data":` + cached + `}`)
		}
	}

	slot, err := helper.EarliestUpcomingSlot(time.Now())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if slot == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"name":       slot.Name,
		"orderStart": slot.OrderStart.String(),
		"orderEnd":   slot.OrderEnd.String(),
	})
}

func CreateSlot(c *fiber.Ctx) error {
	slot := c.Locals("createInput").(model.PostalOrderSlot)

	// khoá theo tháng: kiểm chồng lấn rồi ghi phải là một cụm nguyên tử
	release, ok := helper.AcquireMonthLock(slot.Month)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Tháng này đang có thao tác khác, thử lại sau", nil)
	}
	defer release()

	others, err := helper.ActiveSlotsForMonth(slot.Month, 0)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := helper.ValidateSlot(slot, others); err != nil {
		return slotValidationError(c, err)
	}

	slot.Active = true
	if err := database.DB.Create(&slot).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tạo đợt", err)
	}
	if claim, ok := helper.GetInfoAccountFromToken(c); ok {
		log.Printf("Đợt '%s' (%s) tạo bởi %s", slot.Name, slot.Month, claim.Username)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, slot)
}

func EditSlot(c *fiber.Ctx) error {
	slotId := c.Locals("slotId").(int)
	input := c.Locals("updateInput").(model.UpdateSlotInput)

	var slot model.PostalOrderSlot
	if err := database.DB.First(&slot, slotId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SLOT_NOT_FOUND, nil)
	}

	if input.Name != nil {
		slot.Name = *input.Name
	}
	if input.Month != nil {
		slot.Month = *input.Month
	}
	applyDate := func(dst *utils.CustomDate, src *string) {
		if src != nil {
			t, _ := time.Parse("2006-01-02", *src)
			*dst = utils.CustomDate{Time: t}
		}
	}
	applyDate(&slot.OrderStart, input.OrderStart)
	applyDate(&slot.OrderEnd, input.OrderEnd)
	applyDate(&slot.DispatchStart, input.DispatchStart)
	applyDate(&slot.DispatchEnd, input.DispatchEnd)

	release, ok := helper.AcquireMonthLock(slot.Month)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Tháng này đang có thao tác khác, thử lại sau", nil)
	}
	defer release()

	// sửa đợt thì loại chính nó khỏi tập so sánh
	others, err := helper.ActiveSlotsForMonth(slot.Month, slot.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := helper.ValidateSlot(slot, others); err != nil {
		return slotValidationError(c, err)
	}

	if err := database.DB.Save(&slot).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi cập nhật đợt", err)
	}

	var updated model.PostalOrderSlot
	copier.Copy(&updated, &slot)
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

// DeactivateSlot tắt mềm: đợt không tham gia kiểm chồng lấn nữa nhưng vẫn
// truy vấn được để tra cứu lịch sử đơn cũ
func DeactivateSlot(c *fiber.Ctx) error {
	slotId := c.Locals("inputId").(int)

	var slot model.PostalOrderSlot
	if err := database.DB.First(&slot, slotId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SLOT_NOT_FOUND, nil)
	}

	if err := database.DB.Model(&slot).Update("active", false).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tắt đợt", err)
	}
	if claim, ok := helper.GetInfoAccountFromToken(c); ok {
		log.Printf("Đợt '%s' bị tắt bởi %s", slot.Name, claim.Username)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": slot.ID, "active": false})
}

// slotValidationError: lỗi chồng lấn là lỗi cho admin nên trả đủ chi tiết
func slotValidationError(c *fiber.Ctx, err error) error {
	var overlapErr *helper.OverlapError
	if errors.As(err, &overlapErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":      "Đợt bị chồng lấn với đợt khác trong tháng",
			"conflictSlot": overlapErr.SlotName,
			"dimension":    overlapErr.Dimension,
		})
	}
	return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
}
