package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is a catalog entry used to autofill invoice lines by reference.
type Article struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Reference   string    `gorm:"uniqueIndex;not null" json:"reference"`
	Designation string    `gorm:"not null" json:"designation"`
	Prix        float64   `gorm:"type:decimal(10,2);not null" json:"prix"`
	TVA         float64   `gorm:"type:decimal(4,2);default:20" json:"tva"`
	CodeFamille string    `gorm:"index" json:"codeFamille"`

	DateCreation     time.Time `gorm:"autoCreateTime" json:"dateCreation"`
	DateModification time.Time `gorm:"autoUpdateTime" json:"dateModification"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

type FamilleArticle struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Nom         string    `gorm:"not null" json:"nom"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	Coefficient float64   `gorm:"type:decimal(6,3);default:1.0" json:"coefficient"`
	Description string    `gorm:"type:text" json:"description"`
}

func (FamilleArticle) TableName() string { return "familles_articles" }

func (f *FamilleArticle) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
