package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"plombier-backend/models"

	"github.com/google/uuid"
)

const lignesValides = `[
	{"reference": "ROB-01", "designation": "Robinet thermostatique", "quantite": 2, "prixUnitaire": 45.50, "tva": 20},
	{"reference": "MO-01", "designation": "Main d'oeuvre", "quantite": 1.5, "prixUnitaire": 60, "tva": 10}
]`

func TestCreateFactureNumerotationSequentielle(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	creerClientTest(t, db, "CL001")

	body := fmt.Sprintf(`{"idClient": "CL001", "lignes": %s}`, lignesValides)
	prefix := factureService.PrefixeMois(time.Now())

	for i, suffixe := range []string{"001", "002"} {
		w := performJSON(r, "POST", "/api/factures", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("facture %d: expected 201, got %d (%s)", i+1, w.Code, w.Body.String())
		}

		var facture models.Facture
		if err := json.Unmarshal(w.Body.Bytes(), &facture); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if facture.NumeroFacture != prefix+suffixe {
			t.Errorf("expected numero %s%s, got %s", prefix, suffixe, facture.NumeroFacture)
		}
	}
}

func TestCreateFactureCalculeTotaux(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	creerClientTest(t, db, "CL001")

	body := fmt.Sprintf(`{"idClient": "CL001", "lignes": %s}`, lignesValides)
	w := performJSON(r, "POST", "/api/factures", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var facture models.Facture
	if err := json.Unmarshal(w.Body.Bytes(), &facture); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	// 91.00 + 90.00 HT ; 18.20 + 9.00 TVA
	if facture.Totaux.TotalHT != 181.00 {
		t.Errorf("expected TotalHT 181.00, got %v", facture.Totaux.TotalHT)
	}
	if facture.Totaux.TotalTVA != 27.20 {
		t.Errorf("expected TotalTVA 27.20, got %v", facture.Totaux.TotalTVA)
	}
	if facture.Totaux.TotalTTC != 208.20 {
		t.Errorf("expected TotalTTC 208.20, got %v", facture.Totaux.TotalTTC)
	}
	if facture.Client.Nom != "Durand" {
		t.Errorf("expected client snapshot on the facture, got %q", facture.Client.Nom)
	}
}

func TestCreateFactureLigneInvalideNeCreeRien(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	creerClientTest(t, db, "CL001")

	body := `{"idClient": "CL001", "lignes": [
		{"reference": "ROB-01", "designation": "Robinet", "quantite": 0, "prixUnitaire": 45.50, "tva": 20}
	]}`

	w := performJSON(r, "POST", "/api/factures", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Facture{}).Count(&count)
	if count != 0 {
		t.Errorf("no facture should be persisted after a rejected line set, found %d", count)
	}
}

func TestCreateFactureClientInconnu(t *testing.T) {
	setupTestDB(t)
	r := setupTestRouter()

	body := fmt.Sprintf(`{"idClient": "CL404", "lignes": %s}`, lignesValides)
	w := performJSON(r, "POST", "/api/factures", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Client non trouvé") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCreateFactureInterventionNonTerminee(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	creerClientTest(t, db, "CL001")

	intervention := models.Intervention{IDClient: "CL001", Statut: models.StatutPlanifiee, Type: models.TypeDepannage, TVA: 20}
	if err := db.Create(&intervention).Error; err != nil {
		t.Fatalf("failed to create intervention: %v", err)
	}

	body := fmt.Sprintf(`{"idClient": "CL001", "interventionId": %q, "lignes": %s}`, intervention.ID, lignesValides)
	w := performJSON(r, "POST", "/api/factures", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "terminée") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCreateFactureInterventionTerminee(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	creerClientTest(t, db, "CL001")

	intervention := models.Intervention{IDClient: "CL001", Statut: models.StatutTerminee, Type: models.TypeDepannage, TVA: 20}
	if err := db.Create(&intervention).Error; err != nil {
		t.Fatalf("failed to create intervention: %v", err)
	}

	body := fmt.Sprintf(`{"idClient": "CL001", "interventionId": %q, "lignes": %s}`, intervention.ID, lignesValides)
	w := performJSON(r, "POST", "/api/factures", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestGetFactureOrdreLignesStable(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	creerClientTest(t, db, "CL001")

	body := `{"idClient": "CL001", "lignes": [
		{"reference": "L-A", "designation": "Ligne A", "quantite": 1, "prixUnitaire": 10, "tva": 20},
		{"reference": "L-B", "designation": "Ligne B", "quantite": 1, "prixUnitaire": 20, "tva": 20},
		{"reference": "L-C", "designation": "Ligne C", "quantite": 1, "prixUnitaire": 30, "tva": 20}
	]}`
	w := performJSON(r, "POST", "/api/factures", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var facture models.Facture
	if err := json.Unmarshal(w.Body.Bytes(), &facture); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	// Rewrite the first line as a relational store may (vacuum, replication):
	// delete and re-insert it so it lands last in physical row order
	var premiere models.LigneFacture
	if err := db.First(&premiere, "facture_id = ? AND reference = ?", facture.ID, "L-A").Error; err != nil {
		t.Fatalf("failed to load line: %v", err)
	}
	if err := db.Delete(&models.LigneFacture{}, "id = ?", premiere.ID).Error; err != nil {
		t.Fatalf("failed to delete line: %v", err)
	}
	premiere.ID = uuid.Nil
	if err := db.Create(&premiere).Error; err != nil {
		t.Fatalf("failed to re-insert line: %v", err)
	}

	w = performJSON(r, "GET", "/api/factures/"+facture.ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var rechargee models.Facture
	if err := json.Unmarshal(w.Body.Bytes(), &rechargee); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	attendu := []string{"L-A", "L-B", "L-C"}
	if len(rechargee.Lignes) != len(attendu) {
		t.Fatalf("expected %d lignes, got %d", len(attendu), len(rechargee.Lignes))
	}
	for i, ref := range attendu {
		if rechargee.Lignes[i].Reference != ref {
			t.Errorf("ligne %d: expected %s, got %s", i, ref, rechargee.Lignes[i].Reference)
		}
	}
}

func TestProchainNumeroFacturePreview(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter()
	creerClientTest(t, db, "CL001")

	w := performJSON(r, "GET", "/api/factures/prochain-numero", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	attendu := factureService.PrefixeMois(time.Now()) + "001"
	if resp["numeroFacture"] != attendu {
		t.Errorf("expected %s, got %s", attendu, resp["numeroFacture"])
	}

	// The preview reserves nothing: creating afterwards issues the same number
	body := fmt.Sprintf(`{"idClient": "CL001", "lignes": %s}`, lignesValides)
	w = performJSON(r, "POST", "/api/factures", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var facture models.Facture
	if err := json.Unmarshal(w.Body.Bytes(), &facture); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if facture.NumeroFacture != attendu {
		t.Errorf("expected %s, got %s", attendu, facture.NumeroFacture)
	}
}
