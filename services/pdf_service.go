// services/pdf_service.go
package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"plombier-backend/models"
)

// PDFEngine rasterizes a self-contained HTML document to PDF bytes.
// The engine owns the rendering process and must release it on every
// exit path, success or failure.
type PDFEngine interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ClientDocument, LigneDocument, FactureDocument and EntrepriseDocument
// mirror the JSON payload of POST /api/generate-pdf.
type ClientDocument struct {
	Nom     string         `json:"nom"`
	Prenom  string         `json:"prenom"`
	Email   string         `json:"email"`
	Adresse models.Adresse `json:"adresse"`
}

type LigneDocument struct {
	Reference    string  `json:"reference"`
	Designation  string  `json:"designation"`
	Quantite     float64 `json:"quantite"`
	PrixUnitaire float64 `json:"prixUnitaire"`
	TVA          float64 `json:"tva"`
}

type FactureDocument struct {
	NumeroFacture string          `json:"numeroFacture"`
	DateFacture   string          `json:"dateFacture"`
	Client        ClientDocument  `json:"client"`
	Lignes        []LigneDocument `json:"lignes"`
	Totaux        models.Totaux   `json:"totaux"`
}

type EntrepriseDocument struct {
	RaisonSociale         string         `json:"raisonSociale"`
	SIRET                 string         `json:"siret"`
	Adresse               models.Adresse `json:"adresse"`
	TVAIntracommunautaire string         `json:"tvaIntracommunautaire"`
	Logo                  string         `json:"logo"`
}

// PDFService assembles the invoice HTML and delegates rendering to the
// engine. Values are embedded verbatim; totals are the caller's job.
type PDFService struct {
	Engine PDFEngine
	Client *http.Client // logo retrieval
}

func NewPDFService(engine PDFEngine) *PDFService {
	return &PDFService{
		Engine: engine,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// GenerateFacturePDF builds the invoice document and renders it.
// A missing or unreachable logo degrades the output, never aborts it.
func (s *PDFService) GenerateFacturePDF(ctx context.Context, facture FactureDocument, entreprise EntrepriseDocument) ([]byte, error) {
	var logo template.URL
	if entreprise.Logo != "" {
		dataURI, err := s.logoDataURI(ctx, entreprise.Logo)
		if err != nil {
			log.Printf("Logo %s inaccessible, facture générée sans logo: %v", entreprise.Logo, err)
		} else {
			logo = dataURI
		}
	}

	html, err := buildFactureHTML(facture, entreprise, logo)
	if err != nil {
		return nil, fmt.Errorf("assemblage du document: %w", err)
	}

	return s.Engine.RenderPDF(ctx, html)
}

// logoDataURI fetches the logo and inlines it so the rendered document
// needs no network access of its own.
func (s *PDFService) logoDataURI(ctx context.Context, url string) (template.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("statut %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return template.URL(fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(body))), nil
}

type ligneVue struct {
	Reference    string
	Designation  string
	PrixUnitaire string
	Quantite     string
	TVA          string
	TotalHT      string
}

type factureVue struct {
	Logo          template.URL
	Entreprise    EntrepriseDocument
	Client        ClientDocument
	NumeroFacture string
	DateFacture   string
	Lignes        []ligneVue
	TotalHT       string
	TotalTVA      string
	TotalTTC      string
}

func buildFactureHTML(facture FactureDocument, entreprise EntrepriseDocument, logo template.URL) (string, error) {
	vue := factureVue{
		Logo:          logo,
		Entreprise:    entreprise,
		Client:        facture.Client,
		NumeroFacture: facture.NumeroFacture,
		DateFacture:   formatDateFR(facture.DateFacture),
		TotalHT:       montant(facture.Totaux.TotalHT),
		TotalTVA:      montant(facture.Totaux.TotalTVA),
		TotalTTC:      montant(facture.Totaux.TotalTTC),
	}
	for _, l := range facture.Lignes {
		vue.Lignes = append(vue.Lignes, ligneVue{
			Reference:    l.Reference,
			Designation:  l.Designation,
			PrixUnitaire: montant(l.PrixUnitaire),
			Quantite:     strconv.FormatFloat(l.Quantite, 'f', -1, 64),
			TVA:          strconv.FormatFloat(l.TVA, 'f', -1, 64) + "%",
			TotalHT:      montant(l.PrixUnitaire * l.Quantite),
		})
	}

	var b strings.Builder
	if err := factureTmpl.Execute(&b, vue); err != nil {
		return "", err
	}
	return b.String(), nil
}

func montant(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}

// formatDateFR renders an ISO date as jj/mm/aaaa; unparseable input is
// passed through untouched.
func formatDateFR(date string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return date
}

var factureTmpl = template.Must(template.New("facture").Parse(`<html>
  <head>
    <meta charset="UTF-8">
    <style>
      body { font-family: Arial, sans-serif; padding: 20px; }
      h1 { color: #2563eb; }
      .company-info, .client-info { margin-bottom: 15px; }
      table { width: 100%; border-collapse: collapse; margin-top: 20px; }
      th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
      th { background-color: #2563eb; color: white; }
      .totals { margin-top: 20px; font-weight: bold; }
    </style>
  </head>
  <body>
    <div class="company-info">
      {{if .Logo}}<img src="{{.Logo}}" alt="Logo" style="max-width:100px;"/>{{end}}
      <h1>{{.Entreprise.RaisonSociale}}</h1>
      <p>{{.Entreprise.Adresse.Rue}}, {{.Entreprise.Adresse.CodePostal}} {{.Entreprise.Adresse.Ville}}</p>
      <p>SIRET: {{.Entreprise.SIRET}}, TVA: {{.Entreprise.TVAIntracommunautaire}}</p>
    </div>

    <div class="client-info">
      <h2>Client</h2>
      <p>{{.Client.Nom}} {{.Client.Prenom}}</p>
      <p>{{.Client.Adresse.Rue}}, {{.Client.Adresse.CodePostal}} {{.Client.Adresse.Ville}}</p>
    </div>

    <h2>Facture N° {{.NumeroFacture}}</h2>
    <p>Date: {{.DateFacture}}</p>

    <table>
      <thead>
        <tr>
          <th>Référence</th>
          <th>Désignation</th>
          <th>Prix unitaire</th>
          <th>Quantité</th>
          <th>TVA</th>
          <th>Total HT</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lignes}}
        <tr>
          <td>{{.Reference}}</td>
          <td>{{.Designation}}</td>
          <td>{{.PrixUnitaire}}</td>
          <td>{{.Quantite}}</td>
          <td>{{.TVA}}</td>
          <td>{{.TotalHT}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <p>Total HT: {{.TotalHT}}</p>
      <p>TVA: {{.TotalTVA}}</p>
      <p>Total TTC: {{.TotalTTC}}</p>
    </div>
  </body>
</html>`))
