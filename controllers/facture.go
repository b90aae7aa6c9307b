// controllers/facture.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"plombier-backend/config"
	"plombier-backend/models"
	"plombier-backend/services"
	"plombier-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var factureService = services.NewFactureService()

// LigneFactureInput defines one invoice line as typed in the builder
type LigneFactureInput struct {
	Reference    string  `json:"reference"`
	Designation  string  `json:"designation"`
	Quantite     float64 `json:"quantite"`
	PrixUnitaire float64 `json:"prixUnitaire"`
	TVA          float64 `json:"tva"`
}

// CreateFactureInput defines the expected JSON structure for creating an invoice
type CreateFactureInput struct {
	IDClient       string              `json:"idClient" binding:"required"`
	InterventionID *uuid.UUID          `json:"interventionId"`
	DateFacture    *time.Time          `json:"dateFacture"`
	Lignes         []LigneFactureInput `json:"lignes" binding:"required"`
}

// CreateFacture validates the lines, derives the next invoice number and
// persists the invoice with a frozen client snapshot, all in one
// transaction. Invalid lines are rejected before anything touches the
// store.
func CreateFacture(c *gin.Context) {
	var input CreateFactureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	lignes := make([]models.LigneFacture, 0, len(input.Lignes))
	for i, l := range input.Lignes {
		lignes = append(lignes, models.LigneFacture{
			Ordre:        i,
			Reference:    l.Reference,
			Designation:  l.Designation,
			Quantite:     l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
			TVA:          l.TVA,
		})
	}

	if err := factureService.ValiderLignes(lignes); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("id_client = ?", input.IDClient).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Invoicing from an intervention is only unlocked once it is terminée
	if input.InterventionID != nil {
		var intervention models.Intervention
		if err := config.DB.First(&intervention, "id = ?", *input.InterventionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Intervention non trouvée")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		if intervention.Statut != models.StatutTerminee {
			utils.RespondWithError(c, http.StatusBadRequest, "Seule une intervention terminée peut être facturée")
			return
		}
	}

	for i := range lignes {
		ht, _, _ := factureService.MontantsLigne(lignes[i])
		lignes[i].MontantHT = ht
	}

	dateFacture := time.Now()
	if input.DateFacture != nil {
		dateFacture = *input.DateFacture
	}

	facture := models.Facture{
		DateFacture: dateFacture,
		Client: models.ClientFacture{
			IDClient: client.IDClient,
			Nom:      client.Nom,
			Prenom:   client.Prenom,
			Email:    client.Email,
			Adresse:  client.Adresse,
		},
		Lignes: lignes,
		Totaux: factureService.CalculerTotaux(lignes),
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// The number is derived from every number already issued this month.
	// No atomic counter exists; the unique index turns a concurrent
	// collision into a failed insert, not a duplicate.
	prefix := factureService.PrefixeMois(dateFacture)
	var existants []string
	if err := tx.Model(&models.Facture{}).
		Where("numero_facture LIKE ?", prefix+"%").
		Pluck("numero_facture", &existants).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to derive invoice number")
		return
	}
	facture.NumeroFacture = factureService.ProchainNumero(dateFacture, existants)

	if err := tx.Create(&facture).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, facture)
}

// lignesOrdonnees reloads lines in document order, whatever the
// physical row order is.
func lignesOrdonnees(db *gorm.DB) *gorm.DB {
	return db.Order("ordre")
}

// GetFactures lists invoices, newest issue date first.
func GetFactures(c *gin.Context) {
	var factures []models.Facture
	if err := config.DB.Preload("Lignes", lignesOrdonnees).
		Order("date_facture desc").
		Find(&factures).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, factures)
}

func GetFacture(c *gin.Context) {
	var facture models.Facture
	if err := config.DB.Preload("Lignes", lignesOrdonnees).
		First(&facture, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Facture non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, facture)
}

func DeleteFacture(c *gin.Context) {
	var facture models.Facture
	if err := config.DB.First(&facture, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Facture non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("facture_id = ?", facture.ID).Delete(&models.LigneFacture{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice lines")
		return
	}
	if err := tx.Delete(&facture).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Facture supprimée"})
}

// ProchainNumeroFacture previews the number the next invoice would get,
// for display in the builder before saving.
func ProchainNumeroFacture(c *gin.Context) {
	now := time.Now()
	prefix := factureService.PrefixeMois(now)

	var existants []string
	if err := config.DB.Model(&models.Facture{}).
		Where("numero_facture LIKE ?", prefix+"%").
		Pluck("numero_facture", &existants).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to derive invoice number")
		return
	}

	c.JSON(http.StatusOK, gin.H{"numeroFacture": factureService.ProchainNumero(now, existants)})
}
