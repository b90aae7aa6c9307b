// models/rappel_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RappelLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RendezVousID uuid.UUID `gorm:"type:uuid;index;not null" json:"rendezVousId"`
	Message      string    `gorm:"type:text" json:"message"`
	Canal        string    `gorm:"type:varchar(20)" json:"canal"`  // whatsapp, sms
	Statut       string    `gorm:"type:varchar(20)" json:"statut"` // sent, failed
	Erreur       string    `gorm:"type:text" json:"erreur"`
	DateEnvoi    time.Time `json:"dateEnvoi"`
}

func (r *RappelLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
