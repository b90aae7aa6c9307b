// services/facture_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"plombier-backend/models"
)

// NumeroFacturePrefix starts every invoice number: FC + AAMM + NNN (ex: FC2402001).
const NumeroFacturePrefix = "FC"

var (
	ErrAucuneLigne      = errors.New("la facture doit contenir au moins une ligne")
	ErrLigneIncomplete  = errors.New("référence et désignation sont obligatoires sur chaque ligne")
	ErrQuantiteInvalide = errors.New("la quantité doit être strictement positive")
	ErrPrixInvalide     = errors.New("le prix unitaire doit être strictement positif")
	ErrTauxTVAInvalide  = errors.New("le taux de TVA doit être 5.5, 10 ou 20")
)

// FactureService encapsulates invoice numbering and amount computation.
// DB access stays in the controllers.
type FactureService struct{}

func NewFactureService() *FactureService { return &FactureService{} }

// TauxTVAValide reports whether a rate belongs to the closed set {5.5, 10, 20}.
func TauxTVAValide(taux float64) bool {
	return taux == 5.5 || taux == 10 || taux == 20
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PrefixeMois returns the FC+AAMM prefix shared by all invoices of a month.
func (s *FactureService) PrefixeMois(t time.Time) string {
	return fmt.Sprintf("%s%02d%02d", NumeroFacturePrefix, t.Year()%100, int(t.Month()))
}

// ProchainNumero computes the next unused invoice number for the month of
// now, given every previously issued number. The counter restarts at 001
// each month and is zero-padded to 3 digits.
//
// Two concurrent creations reading the same list can derive the same
// number; there is no atomic counter. The unique index on numero_facture
// makes the later insert fail instead of issuing a duplicate.
func (s *FactureService) ProchainNumero(now time.Time, existants []string) string {
	prefix := s.PrefixeMois(now)

	dernier := 0
	for _, numero := range existants {
		if !strings.HasPrefix(numero, prefix) || len(numero) < len(prefix)+3 {
			continue
		}
		n, err := strconv.Atoi(numero[len(numero)-3:])
		if err != nil {
			continue
		}
		if n > dernier {
			dernier = n
		}
	}

	return fmt.Sprintf("%s%03d", prefix, dernier+1)
}

// ValiderLignes rejects a line set before anything is written to the store.
func (s *FactureService) ValiderLignes(lignes []models.LigneFacture) error {
	if len(lignes) == 0 {
		return ErrAucuneLigne
	}
	for _, l := range lignes {
		if strings.TrimSpace(l.Reference) == "" || strings.TrimSpace(l.Designation) == "" {
			return ErrLigneIncomplete
		}
		if l.Quantite <= 0 {
			return ErrQuantiteInvalide
		}
		if l.PrixUnitaire <= 0 {
			return ErrPrixInvalide
		}
		if !TauxTVAValide(l.TVA) {
			return ErrTauxTVAInvalide
		}
	}
	return nil
}

// MontantsLigne derives the HT, TVA and TTC amounts of one line, rounded
// to 2 decimal places.
func (s *FactureService) MontantsLigne(l models.LigneFacture) (ht, tva, ttc float64) {
	ht = Round2(l.Quantite * l.PrixUnitaire)
	tva = Round2(ht * l.TVA / 100)
	ttc = Round2(ht + tva)
	return ht, tva, ttc
}

// CalculerTotaux recomputes invoice totals from the lines. Stored totals
// are never trusted for display; callers run this before rendering.
func (s *FactureService) CalculerTotaux(lignes []models.LigneFacture) models.Totaux {
	var t models.Totaux
	for _, l := range lignes {
		ht, tva, _ := s.MontantsLigne(l)
		t.TotalHT += ht
		t.TotalTVA += tva
	}
	t.TotalHT = Round2(t.TotalHT)
	t.TotalTVA = Round2(t.TotalTVA)
	t.TotalTTC = Round2(t.TotalHT + t.TotalTVA)
	return t
}
