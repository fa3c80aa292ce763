package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config đọc biến môi trường theo key, ưu tiên file .env nếu có
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Print("")
	}
	return os.Getenv(key)
}
