package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"plombier-backend/services"
)

type stubEngine struct {
	err error
}

func (s *stubEngine) RenderPDF(_ context.Context, _ string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-stub"), nil
}

func setupPDFStub(t *testing.T, engine *stubEngine) {
	t.Helper()
	previous := pdfService
	SetPDFService(services.NewPDFService(engine))
	t.Cleanup(func() { SetPDFService(previous) })
}

const generatePDFBody = `{
	"facture": {
		"numeroFacture": "FC2403001",
		"dateFacture": "2024-03-05",
		"client": {"nom": "Durand", "prenom": "Paul", "adresse": {"rue": "12 rue des Lilas", "codePostal": "69003", "ville": "Lyon"}},
		"lignes": [
			{"reference": "ROB-01", "designation": "Robinet thermostatique", "quantite": 2, "prixUnitaire": 45.50, "tva": 20}
		]
	},
	"entreprise": {
		"raisonSociale": "Plomberie Martin",
		"siret": "123 456 789 00010",
		"adresse": {"rue": "4 avenue Jean Jaurès", "codePostal": "69007", "ville": "Lyon"}
	}
}`

func TestGeneratePDF(t *testing.T) {
	setupPDFStub(t, &stubEngine{})
	r := setupTestRouter()

	w := performJSON(r, "POST", "/api/generate-pdf", generatePDFBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `inline; filename="Facture_FC2403001.pdf"` {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("expected Cache-Control no-store, got %s", cc)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Errorf("expected PDF bytes, got %q", w.Body.String())
	}
}

func TestGeneratePDFSansNumero(t *testing.T) {
	setupPDFStub(t, &stubEngine{})
	r := setupTestRouter()

	body := strings.Replace(generatePDFBody, `"numeroFacture": "FC2403001",`, "", 1)
	w := performJSON(r, "POST", "/api/generate-pdf", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["error"] != "Données invalides" {
		t.Errorf("unexpected error message: %s", resp["error"])
	}
	if resp["details"] == "" {
		t.Error("details should explain what is missing")
	}
}

func TestGeneratePDFFactureManquante(t *testing.T) {
	setupPDFStub(t, &stubEngine{})
	r := setupTestRouter()

	w := performJSON(r, "POST", "/api/generate-pdf", `{"entreprise": {"raisonSociale": "Plomberie Martin"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestGeneratePDFMethodeInterdite(t *testing.T) {
	setupPDFStub(t, &stubEngine{})
	r := setupTestRouter()

	w := performJSON(r, "GET", "/api/generate-pdf", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d (%s)", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["error"] != "Méthode GET non autorisée" {
		t.Errorf("unexpected error message: %s", resp["error"])
	}
}

func TestGeneratePDFErreurMoteur(t *testing.T) {
	setupPDFStub(t, &stubEngine{err: errors.New("lancement du navigateur: exec: chrome introuvable")})
	r := setupTestRouter()

	w := performJSON(r, "POST", "/api/generate-pdf", generatePDFBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d (%s)", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["error"] != "Erreur lors de la génération du PDF" {
		t.Errorf("unexpected error message: %s", resp["error"])
	}
	if resp["details"] == "" {
		t.Error("details should carry the engine failure")
	}
}
