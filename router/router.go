package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/controllers"
	"github.com/restsoft-app/restsoft-pos/middlewares"
	"github.com/restsoft-app/restsoft-pos/services"
)

func SetupRouter(app *services.App, client *backend.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(app)
	salonCtrl := controllers.NewSalonController(app)
	orderCtrl := controllers.NewOrderController(app)
	catalogCtrl := controllers.NewCatalogController(app)
	employeeCtrl := controllers.NewEmployeeController(app, client)
	statsCtrl := controllers.NewStatsController(app)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/auth/role", authCtrl.ChooseRole)
	r.POST("/auth/register", authCtrl.Register)
	r.POST("/auth/login", authCtrl.Login)
	r.POST("/auth/forgot", authCtrl.Forgot)
	r.POST("/auth/reset", authCtrl.Reset)

	// Websocket for live table/order updates
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.EventsHandler)

	// The screens live under /salon; the admin redirect points here.
	r.GET("/salon", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "salon"})
	})

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/auth/logout", authCtrl.Logout)
		auth.GET("/auth/me", authCtrl.Me)

		// Catalog
		auth.GET("/catalog/products", catalogCtrl.GetProducts)
		auth.GET("/catalog/categories", catalogCtrl.GetCategories)
		auth.POST("/catalog/refresh", catalogCtrl.Refresh)

		// Salon board
		auth.GET("/salon/tables", salonCtrl.GetTables)
		auth.GET("/salon/tables/:id", salonCtrl.GetTable)
		auth.POST("/salon/tables/:id/open", salonCtrl.OpenTable)
		auth.PATCH("/salon/tables/:id", salonCtrl.UpdateTable)
		auth.POST("/salon/tables/:id/items", salonCtrl.AddItem)
		auth.DELETE("/salon/tables/:id/items/:product_id", salonCtrl.RemoveItem)
		auth.PATCH("/salon/tables/:id/items/:product_id", salonCtrl.AdjustItem)
		auth.POST("/salon/tables/:id/submit", salonCtrl.SubmitOrder)
		auth.GET("/salon/tables/:id/bill", salonCtrl.GetBill)
		auth.GET("/salon/tables/:id/order", salonCtrl.GetOrder)
		auth.POST("/salon/tables/:id/bill/confirm", salonCtrl.ConfirmBill)
		auth.POST("/salon/tables/:id/close", salonCtrl.CloseTable)

		// Delivery and counter composers
		auth.GET("/carts/:origin", orderCtrl.GetCart)
		auth.POST("/carts/:origin/items", orderCtrl.AddCartItem)
		auth.DELETE("/carts/:origin/items/:product_id", orderCtrl.RemoveCartItem)
		auth.PATCH("/carts/:origin/items/:product_id", orderCtrl.AdjustCartItem)
		auth.DELETE("/carts/:origin", orderCtrl.ClearCart)
		auth.PUT("/delivery/details", orderCtrl.SetDeliveryDetails)
		auth.POST("/delivery/submit", orderCtrl.SubmitDelivery)
		auth.PUT("/counter/details", orderCtrl.SetCounterDetails)
		auth.POST("/counter/submit", orderCtrl.SubmitCounter)

		// Order history
		auth.GET("/orders", orderCtrl.GetOrders)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.POST("/catalog/products", catalogCtrl.CreateProduct)
		admin.PATCH("/catalog/products/:id", catalogCtrl.UpdateProduct)
		admin.POST("/catalog/categories", catalogCtrl.CreateCategory)

		admin.GET("/employees", employeeCtrl.GetEmployees)
		admin.POST("/employees", employeeCtrl.CreateEmployee)
		admin.DELETE("/employees/:id", employeeCtrl.DeleteEmployee)

		admin.POST("/salon/resize", salonCtrl.Resize)

		admin.GET("/stats", statsCtrl.GetStats)
	}

	return r
}
