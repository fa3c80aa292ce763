package handler

import (
	"dessert_shop/database"
	"dessert_shop/model"
	"dessert_shop/utils"

	"github.com/gofiber/fiber/v2"
)

func GetProducts(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.Product{}).Where("active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if postal := c.Query("isPostal"); postal != "" {
		query = query.Where("is_postal = ?", postal == "true")
	}

	var totalCount int64
	query.Count(&totalCount)

	limit := c.QueryInt("limit", 0)
	page := c.QueryInt("page", 0)
	if limit > 0 && page >= 1 {
		query = utils.ApplyPagination(query, &limit, &page)
	}

	var products []model.Product
	if err := query.Order("category, name").Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải danh sách sản phẩm", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       products,
		TotalCount: totalCount,
	})
}
