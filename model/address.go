package model

type Address struct {
	DTO
	HouseNumber *string `json:"house_number"` // số nhà
	Province    *string `json:"province"`     // Tỉnh
	District    *string `json:"district"`     // Huyện
	Ward        *string `json:"ward"`         // phường
	Street      *string `json:"street"`       // đường phố
	FullAddress string  `gorm:"not null" validate:"required" json:"fullAddress"`
}

type CreateAddressInput struct {
	HouseNumber *string `json:"house_number"`
	Province    *string `json:"province"`
	District    *string `json:"district"`
	Ward        *string `json:"ward"`
	Street      *string `json:"street"`
	FullAddress string  `json:"fullAddress" validate:"required,min=5,max=255"`
}
