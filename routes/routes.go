package routes

import (
	"os"
	"time"

	"plombier-backend/config"
	"plombier-backend/controllers"
	"plombier-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		allowedOrigins = append(allowedOrigins, frontend)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(config.PerformanceLogger())

	// Photos and logos are served straight from disk
	r.Static("/uploads", "./uploads")

	// Public endpoints: the contact form and the PDF renderer
	r.POST("/contact", controllers.SubmitContact)
	r.POST("/api/generate-pdf", controllers.GeneratePDF)
	for _, method := range []string{"GET", "PUT", "DELETE", "PATCH"} {
		r.Handle(method, "/api/generate-pdf", controllers.PDFMethodNotAllowed)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/me", utils.AuthMiddleware(), controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.GET("/:id/interventions", controllers.GetClientInterventions)
		}

		interventions := api.Group("/interventions")
		{
			interventions.POST("", controllers.CreateIntervention)
			interventions.GET("", controllers.GetInterventions)
			interventions.GET("/:id", controllers.GetIntervention)
			interventions.PUT("/:id", controllers.UpdateIntervention)
			interventions.PUT("/:id/statut", controllers.ChangeStatut)
			interventions.POST("/:id/photos", controllers.UploadPhotoIntervention)
			interventions.DELETE("/:id", controllers.DeleteIntervention)
		}

		factures := api.Group("/factures")
		{
			factures.POST("", controllers.CreateFacture)
			factures.GET("", controllers.GetFactures)
			factures.GET("/prochain-numero", controllers.ProchainNumeroFacture)
			factures.GET("/:id", controllers.GetFacture)
			factures.DELETE("/:id", controllers.DeleteFacture)
		}

		articles := api.Group("/articles")
		{
			articles.POST("", controllers.CreateArticle)
			articles.GET("", controllers.GetArticles)
			articles.GET("/:id", controllers.GetArticle)
			articles.PUT("/:id", controllers.UpdateArticle)
			articles.DELETE("/:id", controllers.DeleteArticle)
		}

		familles := api.Group("/familles")
		{
			familles.POST("", controllers.CreateFamille)
			familles.GET("", controllers.GetFamilles)
			familles.GET("/:id", controllers.GetFamille)
			familles.PUT("/:id", controllers.UpdateFamille)
			familles.DELETE("/:id", controllers.DeleteFamille)
		}

		entreprise := api.Group("/entreprise")
		{
			entreprise.GET("", controllers.GetEntreprise)
			entreprise.PUT("", controllers.UpdateEntreprise)
			entreprise.POST("/logo", controllers.UploadLogoEntreprise)
		}

		rendezVous := api.Group("/rendez-vous")
		{
			rendezVous.GET("", controllers.GetRendezVous)
			rendezVous.PUT("/:id", controllers.UpdateRendezVous)
		}

		api.GET("/dashboard", controllers.GetDashboard)
	}

	return r
}
