package controllers

import (
	"net/http"
	"time"

	"plombier-backend/config"
	"plombier-backend/models"
	"plombier-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboard aggregates the landing-page counters: intervention counts
// per statut, client count, and the current month's invoiced total.
func GetDashboard(c *gin.Context) {
	statuts := []string{
		models.StatutPlanifiee,
		models.StatutEnCours,
		models.StatutTerminee,
		models.StatutAnnulee,
	}

	interventions := gin.H{}
	for _, statut := range statuts {
		var count int64
		if err := config.DB.Model(&models.Intervention{}).
			Where("statut = ?", statut).
			Count(&count).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard")
			return
		}
		interventions[statut] = count
	}

	var nbClients int64
	if err := config.DB.Model(&models.Client{}).Count(&nbClients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard")
		return
	}

	now := time.Now()
	debutMois := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	finMois := debutMois.AddDate(0, 1, 0)

	var caMois float64
	if err := config.DB.Model(&models.Facture{}).
		Where("date_facture >= ? AND date_facture < ?", debutMois, finMois).
		Select("COALESCE(SUM(total_ttc), 0)").
		Scan(&caMois).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interventions": interventions,
		"nbClients":     nbClients,
		"caMoisTTC":     caMois,
	})
}
