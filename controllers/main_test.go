package controllers

import (
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"plombier-backend/config"
	"plombier-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestDB plugs an isolated in-memory database into config.DB.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Client{},
		&models.Intervention{},
		&models.Facture{},
		&models.LigneFacture{},
		&models.Article{},
		&models.FamilleArticle{},
		&models.Entreprise{},
		&models.RendezVous{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	config.DB = db
	return db
}

// setupTestRouter registers the business routes without the auth
// middleware; the handlers under test do not depend on it.
func setupTestRouter() *gin.Engine {
	r := gin.New()

	r.POST("/api/factures", CreateFacture)
	r.GET("/api/factures", GetFactures)
	r.GET("/api/factures/prochain-numero", ProchainNumeroFacture)
	r.GET("/api/factures/:id", GetFacture)
	r.POST("/api/interventions", CreateIntervention)
	r.PUT("/api/rendez-vous/:id", UpdateRendezVous)
	r.PUT("/api/interventions/:id/statut", ChangeStatut)
	r.POST("/api/generate-pdf", GeneratePDF)
	for _, method := range []string{"GET", "PUT", "DELETE", "PATCH"} {
		r.Handle(method, "/api/generate-pdf", PDFMethodNotAllowed)
	}

	return r
}

func performJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func creerClientTest(t *testing.T, db *gorm.DB, code string) models.Client {
	t.Helper()

	client := models.Client{
		IDClient: code,
		Nom:      "Durand",
		Prenom:   "Paul",
		Email:    "paul.durand@example.fr",
		Adresse: models.Adresse{
			Rue:        "12 rue des Lilas",
			CodePostal: "69003",
			Ville:      "Lyon",
		},
	}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}
