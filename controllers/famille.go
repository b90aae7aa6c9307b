package controllers

import (
	"errors"
	"net/http"

	"plombier-backend/config"
	"plombier-backend/models"
	"plombier-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateFamilleInput struct {
	Nom         string   `json:"nom" binding:"required"`
	Code        string   `json:"code" binding:"required"`
	Coefficient *float64 `json:"coefficient"`
	Description string   `json:"description"`
}

type UpdateFamilleInput struct {
	Nom         *string  `json:"nom"`
	Coefficient *float64 `json:"coefficient"`
	Description *string  `json:"description"`
}

func CreateFamille(c *gin.Context) {
	var input CreateFamilleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	coefficient := 1.0
	if input.Coefficient != nil {
		coefficient = *input.Coefficient
	}
	if coefficient <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Le coefficient doit être strictement positif")
		return
	}

	var existing models.FamilleArticle
	result := config.DB.Where("code = ?", input.Code).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Code famille déjà utilisé")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	famille := models.FamilleArticle{
		Nom:         input.Nom,
		Code:        input.Code,
		Coefficient: coefficient,
		Description: input.Description,
	}

	if err := config.DB.Create(&famille).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create article family")
		return
	}

	c.JSON(http.StatusCreated, famille)
}

func GetFamilles(c *gin.Context) {
	var familles []models.FamilleArticle
	if err := config.DB.Order("code").Find(&familles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve article families")
		return
	}

	c.JSON(http.StatusOK, familles)
}

func GetFamille(c *gin.Context) {
	var famille models.FamilleArticle
	if err := config.DB.First(&famille, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Famille non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, famille)
}

func UpdateFamille(c *gin.Context) {
	var famille models.FamilleArticle
	if err := config.DB.First(&famille, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Famille non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateFamilleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Nom != nil {
		famille.Nom = *input.Nom
	}
	if input.Coefficient != nil {
		if *input.Coefficient <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Le coefficient doit être strictement positif")
			return
		}
		famille.Coefficient = *input.Coefficient
	}
	if input.Description != nil {
		famille.Description = *input.Description
	}

	if err := config.DB.Save(&famille).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update article family")
		return
	}

	c.JSON(http.StatusOK, famille)
}

// DeleteFamille removes the family only; articles keep their code_famille.
func DeleteFamille(c *gin.Context) {
	var famille models.FamilleArticle
	if err := config.DB.First(&famille, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Famille non trouvée")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&famille).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete article family")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Famille supprimée"})
}
