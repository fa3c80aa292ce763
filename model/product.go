package model

type Product struct {
	DTO
	Name     string `gorm:"size:150;not null" json:"name"`
	Slug     string `gorm:"uniqueIndex;size:170" json:"slug"`
	Price    int64  `gorm:"not null" json:"price"`    // VND
	Category string `gorm:"size:30" json:"category"`  // CAKE, PASTRY, DRINK, GIFT_BOX
	IsPostal bool   `gorm:"default:false" json:"isPostal"` // dòng hộp quà gửi bưu điện (giới hạn đợt)
	Active   bool   `gorm:"not null;default:true" json:"active"`
}

type ProductFilter struct {
	Pagination
	Category *string `json:"category"`
	IsPostal *bool   `json:"isPostal"`
}
