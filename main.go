package main

import (
	"log"
	"os"

	"plombier-backend/config"
	"plombier-backend/models"
	"plombier-backend/routes"
	"plombier-backend/services"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	config.ConnectDB()

	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Intervention{},
		&models.Facture{},
		&models.LigneFacture{},
		&models.Article{},
		&models.FamilleArticle{},
		&models.Entreprise{},
		&models.RendezVous{},
		&models.RappelLog{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		services.NewRappelService(config.DB).StartScheduler()
	} else {
		log.Println("TWILIO_ACCOUNT_SID absent, rappels désactivés")
	}

	r := routes.SetupRouter()

	log.Printf("Serveur démarré sur le port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
