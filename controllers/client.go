package controllers

import (
	"errors"
	"net/http"
	"strings"

	"plombier-backend/config"
	"plombier-backend/models"
	"plombier-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	IDClient  string         `json:"idClient" binding:"required"`
	Nom       string         `json:"nom" binding:"required"`
	Prenom    string         `json:"prenom"`
	Email     string         `json:"email"`
	Telephone string         `json:"telephone"`
	Adresse   models.Adresse `json:"adresse"`
	Notes     string         `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Nom       *string         `json:"nom"`
	Prenom    *string         `json:"prenom"`
	Email     *string         `json:"email"`
	Telephone *string         `json:"telephone"`
	Adresse   *models.Adresse `json:"adresse"`
	Notes     *string         `json:"notes"`
}

// findClient resolves a path parameter as either the uuid or the
// business client code; screens navigate with both.
func findClient(id string) (models.Client, error) {
	var client models.Client
	if _, err := uuid.Parse(id); err == nil {
		return client, config.DB.First(&client, "id = ?", id).Error
	}
	return client, config.DB.First(&client, "id_client = ?", id).Error
}

func CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Client
	result := config.DB.Where("id_client = ?", input.IDClient).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Code client déjà utilisé")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	client := models.Client{
		IDClient:  input.IDClient,
		Nom:       input.Nom,
		Prenom:    input.Prenom,
		Email:     input.Email,
		Telephone: input.Telephone,
		Adresse:   input.Adresse,
		Notes:     input.Notes,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients lists clients, optionally filtered by ?q= on code, name or city.
func GetClients(c *gin.Context) {
	query := config.DB.Model(&models.Client{})

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"lower(id_client) LIKE ? OR lower(nom) LIKE ? OR lower(adresse_ville) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := query.Order("nom").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

func GetClient(c *gin.Context) {
	client, err := findClient(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

func UpdateClient(c *gin.Context) {
	client, err := findClient(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Nom != nil {
		client.Nom = *input.Nom
	}
	if input.Prenom != nil {
		client.Prenom = *input.Prenom
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Telephone != nil {
		client.Telephone = *input.Telephone
	}
	if input.Adresse != nil {
		client.Adresse = *input.Adresse
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient removes the client record only; interventions and
// factures referencing its code are left untouched.
func DeleteClient(c *gin.Context) {
	client, err := findClient(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client supprimé"})
}

// GetClientInterventions lists a client's interventions, newest first.
func GetClientInterventions(c *gin.Context) {
	client, err := findClient(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var interventions []models.Intervention
	if err := config.DB.Where("id_client = ?", client.IDClient).
		Order("date_intervention desc").
		Find(&interventions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve interventions")
		return
	}

	c.JSON(http.StatusOK, interventions)
}
