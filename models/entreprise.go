package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entreprise is the issuing company profile, a singleton record.
// Read-only input to PDF rendering.
type Entreprise struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RaisonSociale         string    `gorm:"not null" json:"raisonSociale"`
	SIRET                 string    `json:"siret"`
	Adresse               Adresse   `gorm:"embedded;embeddedPrefix:adresse_" json:"adresse"`
	Telephone             string    `json:"telephone"`
	Email                 string    `json:"email"`
	TVAIntracommunautaire string    `json:"tvaIntracommunautaire"`
	Logo                  string    `json:"logo"` // retrievable URL or upload path
}

func (Entreprise) TableName() string { return "entreprise" }

func (e *Entreprise) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
