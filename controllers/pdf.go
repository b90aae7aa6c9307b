package controllers

import (
	"fmt"
	"net/http"

	"plombier-backend/models"
	"plombier-backend/services"

	"github.com/gin-gonic/gin"
)

var pdfService = services.NewPDFService(&services.ChromePDFEngine{})

// SetPDFService swaps the PDF service, for tests.
func SetPDFService(s *services.PDFService) {
	pdfService = s
}

// GeneratePDFInput defines the expected JSON structure for the PDF endpoint
type GeneratePDFInput struct {
	Facture    *services.FactureDocument    `json:"facture"`
	Entreprise *services.EntrepriseDocument `json:"entreprise"`
}

// GeneratePDF renders the posted invoice as an inline PDF. Totals are
// recomputed from the lines before rendering so the document can never
// show figures that disagree with its own lines.
func GeneratePDF(c *gin.Context) {
	var input GeneratePDFInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Données invalides",
			"details": err.Error(),
		})
		return
	}

	if input.Facture == nil || input.Entreprise == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Données invalides",
			"details": "facture et entreprise sont requis",
		})
		return
	}
	if input.Facture.NumeroFacture == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Données invalides",
			"details": "numeroFacture est requis",
		})
		return
	}

	lignes := make([]models.LigneFacture, 0, len(input.Facture.Lignes))
	for _, l := range input.Facture.Lignes {
		lignes = append(lignes, models.LigneFacture{
			Reference:    l.Reference,
			Designation:  l.Designation,
			Quantite:     l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
			TVA:          l.TVA,
		})
	}
	input.Facture.Totaux = factureService.CalculerTotaux(lignes)

	pdf, err := pdfService.GenerateFacturePDF(c.Request.Context(), *input.Facture, *input.Entreprise)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erreur lors de la génération du PDF",
			"details": err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "Facture_"+input.Facture.NumeroFacture+".pdf"))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// PDFMethodNotAllowed rejects anything but POST on the PDF endpoint.
func PDFMethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"error": fmt.Sprintf("Méthode %s non autorisée", c.Request.Method),
	})
}
