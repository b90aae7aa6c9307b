package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"plombier-backend/config"
	"plombier-backend/models"
	"plombier-backend/services"
	"plombier-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateInterventionInput defines the expected JSON structure for creating an intervention
type CreateInterventionInput struct {
	IDClient         string     `json:"idClient" binding:"required"`
	DateIntervention *time.Time `json:"dateIntervention"`
	Type             string     `json:"type"`
	Statut           string     `json:"statut"`
	Description      string     `json:"description"`
	MontantHT        float64    `json:"montantHT" binding:"min=0"`
	TVA              *float64   `json:"tva"`
}

// UpdateInterventionInput defines the expected JSON structure for updating an intervention
type UpdateInterventionInput struct {
	DateIntervention *time.Time `json:"dateIntervention"`
	Type             *string    `json:"type"`
	Description      *string    `json:"description"`
	MontantHT        *float64   `json:"montantHT"`
	TVA              *float64   `json:"tva"`
}

type ChangeStatutInput struct {
	Statut string `json:"statut" binding:"required"`
}

func historiqueActeur(c *gin.Context) string {
	if email := c.GetString("userEmail"); email != "" {
		return email
	}
	return "système"
}

func CreateIntervention(c *gin.Context) {
	var input CreateInterventionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// The client code must resolve before scheduling anything
	var client models.Client
	if err := config.DB.Where("id_client = ?", input.IDClient).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	typeIntervention := input.Type
	if typeIntervention == "" {
		typeIntervention = models.TypeDepannage
	}
	if !models.TypeInterventionValide(typeIntervention) {
		utils.RespondWithError(c, http.StatusBadRequest, "Type d'intervention invalide")
		return
	}

	statut := input.Statut
	if statut == "" {
		statut = models.StatutPlanifiee
	}
	if !models.StatutValide(statut) {
		utils.RespondWithError(c, http.StatusBadRequest, "Statut invalide")
		return
	}

	tva := 20.0
	if input.TVA != nil {
		tva = *input.TVA
	}
	if !services.TauxTVAValide(tva) {
		utils.RespondWithError(c, http.StatusBadRequest, "Le taux de TVA doit être 5.5, 10 ou 20")
		return
	}

	dateIntervention := time.Now()
	if input.DateIntervention != nil {
		dateIntervention = *input.DateIntervention
	}

	intervention := models.Intervention{
		IDClient:         input.IDClient,
		DateIntervention: dateIntervention,
		Type:             typeIntervention,
		Statut:           statut,
		Description:      input.Description,
		MontantHT:        input.MontantHT,
		TVA:              tva,
		MontantTTC:       services.Round2(input.MontantHT * (1 + tva/100)),
		Historique: models.Historique{{
			Date:        time.Now(),
			Action:      "Création",
			Description: "Intervention créée",
			Utilisateur: historiqueActeur(c),
		}},
	}

	if err := config.DB.Create(&intervention).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create intervention")
		return
	}

	c.JSON(http.StatusCreated, intervention)
}

// GetInterventions lists interventions newest first, optionally for one client.
func GetInterventions(c *gin.Context) {
	query := config.DB.Model(&models.Intervention{})

	if idClient := c.Query("idClient"); idClient != "" {
		query = query.Where("id_client = ?", idClient)
	}

	var interventions []models.Intervention
	if err := query.Order("date_intervention desc").Find(&interventions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve interventions")
		return
	}

	c.JSON(http.StatusOK, interventions)
}

func GetIntervention(c *gin.Context) {
	var intervention models.Intervention
	if err := config.DB.First(&intervention, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Intervention non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, intervention)
}

func UpdateIntervention(c *gin.Context) {
	var intervention models.Intervention
	if err := config.DB.First(&intervention, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Intervention non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateInterventionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.DateIntervention != nil {
		intervention.DateIntervention = *input.DateIntervention
	}
	if input.Type != nil {
		if !models.TypeInterventionValide(*input.Type) {
			utils.RespondWithError(c, http.StatusBadRequest, "Type d'intervention invalide")
			return
		}
		intervention.Type = *input.Type
	}
	if input.Description != nil {
		intervention.Description = *input.Description
	}
	if input.MontantHT != nil {
		intervention.MontantHT = *input.MontantHT
	}
	if input.TVA != nil {
		if !services.TauxTVAValide(*input.TVA) {
			utils.RespondWithError(c, http.StatusBadRequest, "Le taux de TVA doit être 5.5, 10 ou 20")
			return
		}
		intervention.TVA = *input.TVA
	}
	if input.MontantHT != nil || input.TVA != nil {
		intervention.MontantTTC = services.Round2(intervention.MontantHT * (1 + intervention.TVA/100))
	}

	intervention.Historique = append(intervention.Historique, models.HistoriqueEntry{
		Date:        time.Now(),
		Action:      "Modification",
		Description: "Intervention modifiée",
		Utilisateur: historiqueActeur(c),
	})

	if err := config.DB.Save(&intervention).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update intervention")
		return
	}

	c.JSON(http.StatusOK, intervention)
}

// ChangeStatut is the explicit status-change command behind the status
// dropdown. Any member of the closed set is accepted from any current
// state; the business keeps reverting terminée interventions on purpose.
func ChangeStatut(c *gin.Context) {
	var intervention models.Intervention
	if err := config.DB.First(&intervention, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Intervention non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input ChangeStatutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.StatutValide(input.Statut) {
		utils.RespondWithError(c, http.StatusBadRequest, "Statut invalide")
		return
	}

	ancien := intervention.Statut
	intervention.Statut = input.Statut
	intervention.Historique = append(intervention.Historique, models.HistoriqueEntry{
		Date:        time.Now(),
		Action:      "Changement de statut",
		Description: fmt.Sprintf("Statut passé de %s à %s", ancien, input.Statut),
		Utilisateur: historiqueActeur(c),
	})

	if err := config.DB.Save(&intervention).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update intervention")
		return
	}

	c.JSON(http.StatusOK, intervention)
}

func DeleteIntervention(c *gin.Context) {
	var intervention models.Intervention
	if err := config.DB.First(&intervention, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Intervention non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&intervention).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete intervention")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Intervention supprimée"})
}

// UploadPhotoIntervention stores a before/after photo under
// uploads/interventions/<id>/<avant|apres>/<filename> and records its
// public URL on the intervention.
func UploadPhotoIntervention(c *gin.Context) {
	var intervention models.Intervention
	if err := config.DB.First(&intervention, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Intervention non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	typePhoto := c.Query("type")
	if typePhoto != "avant" && typePhoto != "apres" {
		utils.RespondWithError(c, http.StatusBadRequest, "Le type doit être avant ou apres")
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Fichier photo manquant")
		return
	}

	nom := filepath.Base(file.Filename)
	dir := filepath.Join("uploads", "interventions", intervention.ID.String(), typePhoto)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store photo")
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, nom)); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	url := fmt.Sprintf("/uploads/interventions/%s/%s/%s", intervention.ID, typePhoto, nom)
	if typePhoto == "avant" {
		intervention.PhotosAvant = append(intervention.PhotosAvant, url)
	} else {
		intervention.PhotosApres = append(intervention.PhotosApres, url)
	}
	intervention.Historique = append(intervention.Historique, models.HistoriqueEntry{
		Date:        time.Now(),
		Action:      "Ajout de photo",
		Description: fmt.Sprintf("Photo %s ajoutée: %s", typePhoto, nom),
		Utilisateur: historiqueActeur(c),
	})

	if err := config.DB.Save(&intervention).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update intervention")
		return
	}

	c.JSON(http.StatusOK, intervention)
}
