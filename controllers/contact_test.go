package controllers

import (
	"net/http"
	"testing"
	"time"

	"plombier-backend/models"

	"gorm.io/gorm"
)

func creerRendezVousTest(t *testing.T, db *gorm.DB) models.RendezVous {
	t.Helper()

	rdv := models.RendezVous{
		Nom:       "Durand",
		Email:     "paul.durand@example.fr",
		Telephone: "+33612345678",
		Date:      time.Now().AddDate(0, 0, 3),
		Creneau:   models.CreneauMatin,
		Statut:    models.StatutRdvNouveau,
	}
	if err := db.Create(&rdv).Error; err != nil {
		t.Fatalf("failed to create test rendez-vous: %v", err)
	}
	return rdv
}

func TestUpdateRendezVousStatut(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	rdv := creerRendezVousTest(t, db)

	w := performJSON(r, "PUT", "/api/rendez-vous/"+rdv.ID.String(), `{"statut": "confirme"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var recharge models.RendezVous
	if err := db.First(&recharge, "id = ?", rdv.ID).Error; err != nil {
		t.Fatalf("failed to reload rendez-vous: %v", err)
	}
	if recharge.Statut != models.StatutRdvConfirme {
		t.Errorf("expected statut confirme, got %s", recharge.Statut)
	}
}

func TestUpdateRendezVousStatutInvalide(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	rdv := creerRendezVousTest(t, db)

	w := performJSON(r, "PUT", "/api/rendez-vous/"+rdv.ID.String(), `{"statut": "archive"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}

	var recharge models.RendezVous
	if err := db.First(&recharge, "id = ?", rdv.ID).Error; err != nil {
		t.Fatalf("failed to reload rendez-vous: %v", err)
	}
	if recharge.Statut != models.StatutRdvNouveau {
		t.Errorf("statut must be unchanged after a rejected value, got %s", recharge.Statut)
	}
}
