package controllers

import (
	"errors"
	"net/http"

	"plombier-backend/config"
	"plombier-backend/models"
	"plombier-backend/services"
	"plombier-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateArticleInput defines the expected JSON structure for creating a catalog article
type CreateArticleInput struct {
	Reference   string   `json:"reference" binding:"required"`
	Designation string   `json:"designation" binding:"required"`
	Prix        float64  `json:"prix" binding:"min=0"`
	TVA         *float64 `json:"tva"`
	CodeFamille string   `json:"codeFamille"`
}

// UpdateArticleInput defines the expected JSON structure for updating an article
type UpdateArticleInput struct {
	Designation *string  `json:"designation"`
	Prix        *float64 `json:"prix"`
	TVA         *float64 `json:"tva"`
	CodeFamille *string  `json:"codeFamille"`
}

func CreateArticle(c *gin.Context) {
	var input CreateArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	var existing models.Article
	result := config.DB.Where("reference = ?", input.Reference).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Référence déjà utilisée")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	article := models.Article{
		Reference:   input.Reference,
		Designation: input.Designation,
		Prix:        input.Prix,
		TVA:         tva,
		CodeFamille: input.CodeFamille,
	}

	if err := config.DB.Create(&article).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create article")
		return
	}

	c.JSON(http.StatusCreated, article)
}

// GetArticles lists catalog articles, optionally filtered by exact
// ?reference= or ?codeFamille=.
func GetArticles(c *gin.Context) {
	query := config.DB.Model(&models.Article{})

	if reference := c.Query("reference"); reference != "" {
		query = query.Where("reference = ?", reference)
	}
	if codeFamille := c.Query("codeFamille"); codeFamille != "" {
		query = query.Where("code_famille = ?", codeFamille)
	}

	var articles []models.Article
	if err := query.Order("reference").Find(&articles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve articles")
		return
	}

	c.JSON(http.StatusOK, articles)
}

func GetArticle(c *gin.Context) {
	var article models.Article
	if err := config.DB.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Article non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, article)
}

func UpdateArticle(c *gin.Context) {
	var article models.Article
	if err := config.DB.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Article non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Designation != nil {
		article.Designation = *input.Designation
	}
	if input.Prix != nil {
		article.Prix = *input.Prix
	}
	if input.TVA != nil {
		if !services.TauxTVAValide(*input.TVA) {
			utils.RespondWithError(c, http.StatusBadRequest, "Le taux de TVA doit être 5.5, 10 ou 20")
			return
		}
		article.TVA = *input.TVA
	}
	if input.CodeFamille != nil {
		article.CodeFamille = *input.CodeFamille
	}

	if err := config.DB.Save(&article).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update article")
		return
	}

	c.JSON(http.StatusOK, article)
}

func DeleteArticle(c *gin.Context) {
	var article models.Article
	if err := config.DB.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Article non trouvé")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&article).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete article")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article supprimé"})
}
