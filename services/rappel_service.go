// services/rappel_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"plombier-backend/models"
	"plombier-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// RappelService sends an SMS/WhatsApp reminder the day before each
// rendez-vous taken through the contact form.
type RappelService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewRappelService(db *gorm.DB) *RappelService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &RappelService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *RappelService) StartScheduler() {
	c := cron.New()

	// Every day at 8 AM
	c.AddFunc("0 8 * * *", s.EnvoyerRappelsDuJour)

	c.Start()
	log.Println("Planificateur de rappels démarré")
}

// EnvoyerRappelsDuJour reminds everyone whose rendez-vous is tomorrow.
func (s *RappelService) EnvoyerRappelsDuJour() {
	log.Println("Traitement des rappels de rendez-vous...")

	demain := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	apresDemain := demain.AddDate(0, 0, 1)

	var rdvs []models.RendezVous
	if err := s.db.Where("date >= ? AND date < ? AND statut <> ?", demain, apresDemain, models.StatutRdvAnnule).
		Find(&rdvs).Error; err != nil {
		log.Printf("Échec de la lecture des rendez-vous: %v", err)
		return
	}

	for _, rdv := range rdvs {
		s.envoyerRappel(rdv)
	}

	log.Printf("Traitement des rappels terminé (%d rendez-vous)", len(rdvs))
}

func (s *RappelService) envoyerRappel(rdv models.RendezVous) {
	message := fmt.Sprintf(
		"Bonjour %s, rappel de votre rendez-vous plomberie/chauffage demain (%s). Répondez à ce message pour annuler ou déplacer.",
		rdv.Nom, models.CreneauLibelle(rdv.Creneau))

	// WhatsApp when the number is E.164, plain SMS otherwise
	canal := "sms"
	to := rdv.Telephone
	if strings.HasPrefix(rdv.Telephone, "+") {
		to = "whatsapp:" + rdv.Telephone
		canal = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if canal == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	statut := "sent"
	erreur := ""

	if err != nil {
		log.Printf("Échec d'envoi du rappel à %s: %v", rdv.Telephone, err)
		statut = "failed"
		erreur = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Rappel envoyé à %s, SID: %s", rdv.Telephone, *resp.Sid)
	} else {
		log.Printf("Rappel envoyé à %s, sans SID retourné", rdv.Telephone)
	}

	rappelLog := models.RappelLog{
		RendezVousID: rdv.ID,
		Message:      message,
		Canal:        canal,
		Statut:       statut,
		Erreur:       erreur,
		DateEnvoi:    time.Now(),
	}

	if err := s.db.Create(&rappelLog).Error; err != nil {
		log.Printf("Échec de journalisation du rappel pour %s: %v", rdv.ID, err)
	}
}
