package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Adresse is the postal address block shared by clients, factures and the company profile.
type Adresse struct {
	Rue        string `json:"rue"`
	CodePostal string `json:"codePostal"`
	Ville      string `json:"ville"`
}

type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	IDClient  string    `gorm:"uniqueIndex;not null" json:"idClient"` // business-assigned client code
	Nom       string    `gorm:"not null" json:"nom"`
	Prenom    string    `json:"prenom"`
	Email     string    `json:"email"`
	Telephone string    `json:"telephone"`
	Adresse   Adresse   `gorm:"embedded;embeddedPrefix:adresse_" json:"adresse"`
	Notes     string    `gorm:"type:text" json:"notes"`

	DateCreation     time.Time `gorm:"autoCreateTime" json:"dateCreation"`
	DateModification time.Time `gorm:"autoUpdateTime" json:"dateModification"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
