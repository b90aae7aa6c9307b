package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"plombier-backend/config"
	"plombier-backend/models"
	"plombier-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateEntrepriseInput defines the expected JSON structure for the company profile
type UpdateEntrepriseInput struct {
	RaisonSociale         *string         `json:"raisonSociale"`
	SIRET                 *string         `json:"siret"`
	Adresse               *models.Adresse `json:"adresse"`
	Telephone             *string         `json:"telephone"`
	Email                 *string         `json:"email"`
	TVAIntracommunautaire *string         `json:"tvaIntracommunautaire"`
	Logo                  *string         `json:"logo"`
}

// GetEntreprise returns the single company profile.
func GetEntreprise(c *gin.Context) {
	var entreprise models.Entreprise
	if err := config.DB.First(&entreprise).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Profil entreprise non renseigné")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, entreprise)
}

// UpdateEntreprise upserts the profile; the first call creates the row.
func UpdateEntreprise(c *gin.Context) {
	var input UpdateEntrepriseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var entreprise models.Entreprise
	err := config.DB.First(&entreprise).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if input.RaisonSociale != nil {
		entreprise.RaisonSociale = *input.RaisonSociale
	}
	if input.SIRET != nil {
		entreprise.SIRET = *input.SIRET
	}
	if input.Adresse != nil {
		entreprise.Adresse = *input.Adresse
	}
	if input.Telephone != nil {
		entreprise.Telephone = *input.Telephone
	}
	if input.Email != nil {
		entreprise.Email = *input.Email
	}
	if input.TVAIntracommunautaire != nil {
		entreprise.TVAIntracommunautaire = *input.TVAIntracommunautaire
	}
	if input.Logo != nil {
		entreprise.Logo = *input.Logo
	}

	if err := config.DB.Save(&entreprise).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save company profile")
		return
	}

	c.JSON(http.StatusOK, entreprise)
}

// UploadLogoEntreprise stores the logo under uploads/entreprise/ and
// records its public URL on the profile.
func UploadLogoEntreprise(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Fichier logo manquant")
		return
	}

	var entreprise models.Entreprise
	if err := config.DB.First(&entreprise).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Profil entreprise non renseigné")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	nom := "logo" + filepath.Ext(filepath.Base(file.Filename))
	dir := filepath.Join("uploads", "entreprise")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store logo")
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, nom)); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store logo")
		return
	}

	entreprise.Logo = "/uploads/entreprise/" + nom
	if err := config.DB.Save(&entreprise).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save company profile")
		return
	}

	c.JSON(http.StatusOK, entreprise)
}
