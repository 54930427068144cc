package routes

import (
	"log"
	"os"
	"strconv"

	_ "libroconecta/docs" // This will be auto-generated
	"libroconecta/internal/adapter/http/handlers"
	repository2 "libroconecta/internal/adapter/persistence/repository"
	"libroconecta/internal/infrastructure/database"
	"libroconecta/internal/infrastructure/payments"
	"libroconecta/internal/usecase"
	"libroconecta/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	txRepo := repository2.NewPaymentTransactionDynamoRepository(ddb)

	urls := usecase.URLConfig{
		PublicBaseURL: getenvDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		FrontendURL:   getenvDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	checkoutUseCase := usecase.NewCheckoutUseCase(txRepo, paymentGateway, urls)
	reconciliationUseCase := usecase.NewReconciliationUseCase(txRepo, paymentGateway, urls)
	statusUseCase := usecase.NewStatusUseCase(txRepo, urls)

	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase)
	webhookHandler := handlers.NewWebhookHandler(reconciliationUseCase)
	returnHandler := handlers.NewReturnHandler(reconciliationUseCase)
	statusHandler := handlers.NewStatusHandler(statusUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, checkoutHandler, webhookHandler, returnHandler, statusHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
