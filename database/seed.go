package database

import (
	"dessert_shop/model"
	"log"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	seedAccounts(db)
	seedProducts(db)
}

func seedAccounts(db *gorm.DB) {
	var count int64
	db.Model(&model.Account{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		log.Printf("Lỗi hash mật khẩu seed: %v", err)
		return
	}
	admin := model.Account{
		Username: "admin",
		Password: string(hash),
		Active:   true,
		Role:     "MANAGER",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Lỗi seed tài khoản: %v", err)
	}
}

func seedProducts(db *gorm.DB) {
	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count > 0 {
		return
	}

	products := []model.Product{
		{Name: "Bánh kem dâu tây", Price: 320000, Category: "CAKE"},
		{Name: "Bánh mousse chanh dây", Price: 280000, Category: "CAKE"},
		{Name: "Tart trứng Bồ Đào Nha", Price: 25000, Category: "PASTRY"},
		{Name: "Bánh su kem vani", Price: 15000, Category: "PASTRY"},
		{Name: "Trà đào cam sả", Price: 45000, Category: "DRINK"},
		{Name: "Hộp quà trung thu đặc biệt", Price: 650000, Category: "GIFT_BOX", IsPostal: true},
		{Name: "Hộp bánh quy bơ sen", Price: 380000, Category: "GIFT_BOX", IsPostal: true},
	}
	for i := range products {
		products[i].Slug = slug.Make(products[i].Name)
		products[i].Active = true
		if err := db.Create(&products[i]).Error; err != nil {
			log.Printf("Lỗi seed sản phẩm %s: %v", products[i].Name, err)
		}
	}
}
