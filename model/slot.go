package model

import "dessert_shop/utils"

// PostalOrderSlot là một đợt đặt bánh gửi bưu điện trong tháng:
// khoảng nhận đặt (order window) và khoảng gửi hàng (dispatch window) sau đó.
// Các đợt active trong cùng tháng không được chồng lấn nhau ở bất kỳ chiều nào.
type PostalOrderSlot struct {
	DTO
	Name          string           `gorm:"size:100;not null" json:"name"`
	Month         string           `gorm:"size:7;index;not null" json:"month"` // MM-YYYY
	OrderStart    utils.CustomDate `gorm:"type:date" json:"orderStart"`
	OrderEnd      utils.CustomDate `gorm:"type:date" json:"orderEnd"`
	DispatchStart utils.CustomDate `gorm:"type:date" json:"dispatchStart"`
	DispatchEnd   utils.CustomDate `gorm:"type:date" json:"dispatchEnd"`
	Active        bool             `gorm:"not null;default:true" json:"active"`
}

type CreateSlotInput struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Month         string `json:"month" validate:"required"` // MM-YYYY
	OrderStart    string `json:"orderStart" validate:"required,datetime=2006-01-02"`
	OrderEnd      string `json:"orderEnd" validate:"required,datetime=2006-01-02"`
	DispatchStart string `json:"dispatchStart" validate:"required,datetime=2006-01-02"`
	DispatchEnd   string `json:"dispatchEnd" validate:"required,datetime=2006-01-02"`
}

type UpdateSlotInput struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=100"`
	Month         *string `json:"month" validate:"omitempty"`
	OrderStart    *string `json:"orderStart" validate:"omitempty,datetime=2006-01-02"`
	OrderEnd      *string `json:"orderEnd" validate:"omitempty,datetime=2006-01-02"`
	DispatchStart *string `json:"dispatchStart" validate:"omitempty,datetime=2006-01-02"`
	DispatchEnd   *string `json:"dispatchEnd" validate:"omitempty,datetime=2006-01-02"`
}

type SlotFilter struct {
	Pagination
	Month  *string `json:"month"`
	Active *bool   `json:"active"`
}
