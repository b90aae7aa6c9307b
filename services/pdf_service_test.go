package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"plombier-backend/models"
)

// fakeEngine captures the HTML instead of launching a browser.
type fakeEngine struct {
	html string
	err  error
}

func (f *fakeEngine) RenderPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func factureExemple() FactureDocument {
	return FactureDocument{
		NumeroFacture: "FC2403001",
		DateFacture:   "2024-03-05",
		Client: ClientDocument{
			Nom:    "Durand",
			Prenom: "Paul",
			Adresse: models.Adresse{
				Rue:        "12 rue des Lilas",
				CodePostal: "69003",
				Ville:      "Lyon",
			},
		},
		Lignes: []LigneDocument{
			{Reference: "ROB-01", Designation: "Robinet thermostatique", Quantite: 2, PrixUnitaire: 45.50, TVA: 20},
		},
		Totaux: models.Totaux{TotalHT: 91, TotalTVA: 18.20, TotalTTC: 109.20},
	}
}

func entrepriseExemple() EntrepriseDocument {
	return EntrepriseDocument{
		RaisonSociale:         "Plomberie Martin",
		SIRET:                 "123 456 789 00010",
		Adresse:               models.Adresse{Rue: "4 avenue Jean Jaurès", CodePostal: "69007", Ville: "Lyon"},
		TVAIntracommunautaire: "FR12345678900",
	}
}

func TestGenerateFacturePDFContenu(t *testing.T) {
	engine := &fakeEngine{}
	s := NewPDFService(engine)

	pdf, err := s.GenerateFacturePDF(context.Background(), factureExemple(), entrepriseExemple())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected PDF bytes")
	}

	for _, attendu := range []string{
		"FC2403001",
		"05/03/2024",
		"Plomberie Martin",
		"Durand",
		"Robinet thermostatique",
		"45.50 €",
		"91.00 €",
		"18.20 €",
		"109.20 €",
	} {
		if !strings.Contains(engine.html, attendu) {
			t.Errorf("rendered HTML missing %q", attendu)
		}
	}
}

func TestGenerateFacturePDFIdempotent(t *testing.T) {
	engine := &fakeEngine{}
	s := NewPDFService(engine)

	if _, err := s.GenerateFacturePDF(context.Background(), factureExemple(), entrepriseExemple()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	premier := engine.html
	if _, err := s.GenerateFacturePDF(context.Background(), factureExemple(), entrepriseExemple()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if engine.html != premier {
		t.Error("same input must produce the same document")
	}
}

func TestGenerateFacturePDFLogoInline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	engine := &fakeEngine{}
	s := NewPDFService(engine)

	entreprise := entrepriseExemple()
	entreprise.Logo = srv.URL + "/logo.png"

	if _, err := s.GenerateFacturePDF(context.Background(), factureExemple(), entreprise); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(engine.html, "data:image/png;base64,") {
		t.Error("logo should be inlined as a data URI")
	}
}

func TestGenerateFacturePDFLogoInaccessible(t *testing.T) {
	engine := &fakeEngine{}
	s := NewPDFService(engine)

	entreprise := entrepriseExemple()
	entreprise.Logo = "http://127.0.0.1:1/logo.png"

	// A dead logo URL degrades the document, it never fails the render
	if _, err := s.GenerateFacturePDF(context.Background(), factureExemple(), entreprise); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(engine.html, "<img") {
		t.Error("document should not carry an image when the logo is unreachable")
	}
}

func TestGenerateFacturePDFErreurMoteur(t *testing.T) {
	engine := &fakeEngine{err: errors.New("export PDF: crash")}
	s := NewPDFService(engine)

	if _, err := s.GenerateFacturePDF(context.Background(), factureExemple(), entrepriseExemple()); err == nil {
		t.Fatal("expected engine error to propagate")
	}
}
