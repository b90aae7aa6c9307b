package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"plombier-backend/config"
	"plombier-backend/models"
	"plombier-backend/services"
	"plombier-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContactInput defines the expected JSON structure for the public contact form
type ContactInput struct {
	Nom       string `json:"nom" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Telephone string `json:"telephone" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Creneau   string `json:"creneau" binding:"required"`
	Message   string `json:"message"`
}

type UpdateRendezVousInput struct {
	Statut string `json:"statut" binding:"required"`
}

// SubmitContact registers a rendez-vous request from the public site and
// dispatches the notification emails in the background. The request
// succeeds even when the emails cannot be sent.
func SubmitContact(c *gin.Context) {
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	telephone := utils.FormatTelephoneFR(input.Telephone)
	if !utils.ValidateTelephoneFR(telephone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Numéro de téléphone invalide (format: +33XXXXXXXXX)")
		return
	}

	if !models.CreneauValide(input.Creneau) {
		utils.RespondWithError(c, http.StatusBadRequest, "Créneau invalide")
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date invalide (format: AAAA-MM-JJ)")
		return
	}

	rdv := models.RendezVous{
		Nom:       input.Nom,
		Email:     input.Email,
		Telephone: telephone,
		Date:      date,
		Creneau:   input.Creneau,
		Message:   input.Message,
	}

	if err := config.DB.Create(&rdv).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to register contact request")
		return
	}

	// Email dispatch never blocks or fails the submission
	notifier := services.NewNotificationService()
	if notifier.Enabled() {
		go func(rdv models.RendezVous) {
			if err := notifier.SendDemandeContact(rdv); err != nil {
				log.Printf("Échec d'envoi des emails de contact pour %s: %v", rdv.ID, err)
			}
		}(rdv)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Demande enregistrée, nous vous recontactons rapidement",
		"rendezVous": rdv,
	})
}

// GetRendezVous lists contact requests, soonest date first.
func GetRendezVous(c *gin.Context) {
	query := config.DB.Model(&models.RendezVous{})

	if statut := c.Query("statut"); statut != "" {
		query = query.Where("statut = ?", statut)
	}

	var rdvs []models.RendezVous
	if err := query.Order("date").Find(&rdvs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contact requests")
		return
	}

	c.JSON(http.StatusOK, rdvs)
}

func UpdateRendezVous(c *gin.Context) {
	var rdv models.RendezVous
	if err := config.DB.First(&rdv, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Rendez-vous non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateRendezVousInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.StatutRdvValide(input.Statut) {
		utils.RespondWithError(c, http.StatusBadRequest, "Statut invalide")
		return
	}

	rdv.Statut = input.Statut
	if err := config.DB.Save(&rdv).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update contact request")
		return
	}

	c.JSON(http.StatusOK, rdv)
}
