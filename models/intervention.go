package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Statuts du cycle de vie d'une intervention.
const (
	StatutPlanifiee = "planifiee"
	StatutEnCours   = "en_cours"
	StatutTerminee  = "terminee"
	StatutAnnulee   = "annulee"
)

// Types d'intervention proposés dans les formulaires.
const (
	TypeReparation   = "reparation"
	TypeInstallation = "installation"
	TypeEntretien    = "entretien"
	TypeDepannage    = "depannage"
	TypeAutre        = "autre"
)

func StatutValide(s string) bool {
	switch s {
	case StatutPlanifiee, StatutEnCours, StatutTerminee, StatutAnnulee:
		return true
	}
	return false
}

func TypeInterventionValide(t string) bool {
	switch t {
	case TypeReparation, TypeInstallation, TypeEntretien, TypeDepannage, TypeAutre:
		return true
	}
	return false
}

// StringList is stored as a JSON array (photo URLs).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return errors.New("unsupported type for StringList")
}

// HistoriqueEntry is one append-only audit line on an intervention.
type HistoriqueEntry struct {
	Date        time.Time `json:"date"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Utilisateur string    `json:"utilisateur"`
}

type Historique []HistoriqueEntry

func (h Historique) Value() (driver.Value, error) {
	if h == nil {
		h = Historique{}
	}
	return json.Marshal(h)
}

func (h *Historique) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	case nil:
		*h = nil
		return nil
	}
	return errors.New("unsupported type for Historique")
}

type Intervention struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	IDClient string    `gorm:"index;not null" json:"idClient"` // client code, not the uuid

	DateIntervention time.Time `json:"dateIntervention"`
	Type             string    `gorm:"type:varchar(20);default:'depannage'" json:"type"`
	Statut           string    `gorm:"type:varchar(20);default:'planifiee'" json:"statut"`
	Description      string    `gorm:"type:text" json:"description"`

	MontantHT  float64 `gorm:"type:decimal(10,2);default:0.0" json:"montantHT"`
	TVA        float64 `gorm:"type:decimal(4,2);default:20" json:"tva"`
	MontantTTC float64 `gorm:"type:decimal(10,2);default:0.0" json:"montantTTC"`

	PhotosAvant StringList `gorm:"type:jsonb;default:'[]'" json:"photosAvant"`
	PhotosApres StringList `gorm:"type:jsonb;default:'[]'" json:"photosApres"`
	Historique  Historique `gorm:"type:jsonb;default:'[]'" json:"historique"`

	DateCreation     time.Time `gorm:"autoCreateTime" json:"dateCreation"`
	DateModification time.Time `gorm:"autoUpdateTime" json:"dateModification"`
}

func (i *Intervention) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
