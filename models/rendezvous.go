package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Créneaux horaires du formulaire de contact.
const (
	CreneauMatin      = "morning"
	CreneauApresMidi  = "afternoon"
	CreneauFinJournee = "evening"
)

func CreneauValide(c string) bool {
	switch c {
	case CreneauMatin, CreneauApresMidi, CreneauFinJournee:
		return true
	}
	return false
}

// CreneauLibelle renders a slot key as shown in emails and SMS.
func CreneauLibelle(c string) string {
	switch c {
	case CreneauMatin:
		return "Matin (8h-12h)"
	case CreneauApresMidi:
		return "Après-midi (14h-17h)"
	case CreneauFinJournee:
		return "Fin de journée (17h-19h)"
	}
	return c
}

// Statuts de traitement d'une demande de contact.
const (
	StatutRdvNouveau  = "nouveau"
	StatutRdvConfirme = "confirme"
	StatutRdvAnnule   = "annule"
)

func StatutRdvValide(s string) bool {
	switch s {
	case StatutRdvNouveau, StatutRdvConfirme, StatutRdvAnnule:
		return true
	}
	return false
}

// RendezVous is a public contact-form request for an intervention.
type RendezVous struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Nom       string    `gorm:"not null" json:"nom"`
	Email     string    `gorm:"not null" json:"email"`
	Telephone string    `gorm:"not null" json:"telephone"` // E.164, +33 prefixed
	Date      time.Time `json:"date"`
	Creneau   string    `gorm:"type:varchar(20)" json:"creneau"`
	Message   string    `gorm:"type:text" json:"message"`

	Statut string `gorm:"type:varchar(20);default:'nouveau'" json:"statut"`
	Source string `gorm:"type:varchar(20);default:'site_web'" json:"source"`

	DateCreation time.Time `gorm:"autoCreateTime" json:"dateCreation"`
}

func (RendezVous) TableName() string { return "rendez_vous" }

func (r *RendezVous) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
