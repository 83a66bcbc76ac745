package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/achadosdoados/backend/cmd/app"
)

// @contact.name   Achados & Doados
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
