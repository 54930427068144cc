package main

import (
	_ "libroconecta/docs"
	"libroconecta/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           LibroConecta Payments API
// @version         1.0
// @description     Payment lifecycle service for the LibroConecta book marketplace (Mercado Pago checkout, webhook reconciliation, status projection) backed by DynamoDB.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
