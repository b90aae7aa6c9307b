package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientFacture is the client identity frozen onto the invoice at creation.
// Editing the client afterwards never changes an issued facture.
type ClientFacture struct {
	IDClient string  `json:"idClient"`
	Nom      string  `json:"nom"`
	Prenom   string  `json:"prenom"`
	Email    string  `json:"email"`
	Adresse  Adresse `gorm:"embedded;embeddedPrefix:adresse_" json:"adresse"`
}

// LigneFacture copies article values at invoice time; it holds no
// reference back to the catalog. Ordre fixes the position of the line
// on the document; row order in the store carries no meaning.
type LigneFacture struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	FactureID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Ordre     int       `gorm:"not null" json:"-"`

	Reference    string  `gorm:"not null" json:"reference"`
	Designation  string  `gorm:"not null" json:"designation"`
	Quantite     float64 `gorm:"type:decimal(10,2);not null" json:"quantite"`
	PrixUnitaire float64 `gorm:"type:decimal(10,2);not null" json:"prixUnitaire"`
	TVA          float64 `gorm:"type:decimal(4,2);not null" json:"tva"`
	MontantHT    float64 `gorm:"type:decimal(10,2);not null" json:"montantHT"`
}

func (l *LigneFacture) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

type Totaux struct {
	TotalHT  float64 `gorm:"type:decimal(10,2);not null" json:"totalHT"`
	TotalTVA float64 `gorm:"type:decimal(10,2);not null" json:"totalTVA"`
	TotalTTC float64 `gorm:"type:decimal(10,2);not null" json:"totalTTC"`
}

type Facture struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	NumeroFacture string    `gorm:"uniqueIndex;not null" json:"numeroFacture"`
	DateFacture   time.Time `json:"dateFacture"`
	DateCreation  time.Time `gorm:"autoCreateTime" json:"dateCreation"`

	Client ClientFacture  `gorm:"embedded;embeddedPrefix:client_" json:"client"`
	Lignes []LigneFacture `gorm:"foreignKey:FactureID" json:"lignes"`
	Totaux Totaux         `gorm:"embedded" json:"totaux"`
}

func (f *Facture) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
