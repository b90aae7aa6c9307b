package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chromedp/chromedp"
)

// renduSimule replaces the browser with counters: one run call per
// phase (launch, content load, export), failing the phase asked for.
type renduSimule struct {
	engine   *ChromePDFEngine
	released int
	runs     int
}

func nouveauRenduSimule(phaseEnEchec int, err error) *renduSimule {
	s := &renduSimule{}
	s.engine = &ChromePDFEngine{
		newBrowser: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return ctx, func() { s.released++ }
		},
		run: func(_ context.Context, _ ...chromedp.Action) error {
			s.runs++
			if s.runs == phaseEnEchec {
				return err
			}
			return nil
		},
	}
	return s
}

func TestRenderPDFLibereLeNavigateurSurEchecDeChargement(t *testing.T) {
	s := nouveauRenduSimule(2, errors.New("frame detached"))

	_, err := s.engine.RenderPDF(context.Background(), "<html><body>x</body></html>")
	if err == nil || !strings.Contains(err.Error(), "chargement du document") {
		t.Fatalf("expected a content-load error, got %v", err)
	}
	if s.released != 1 {
		t.Errorf("browser must be released exactly once, got %d", s.released)
	}
	if s.runs != 2 {
		t.Errorf("render must stop at the failing phase, got %d run calls", s.runs)
	}
}

func TestRenderPDFDistingueLesEchecs(t *testing.T) {
	cases := []struct {
		phase   int
		attendu string
	}{
		{1, "lancement du navigateur"},
		{2, "chargement du document"},
		{3, "export PDF"},
	}

	for _, tc := range cases {
		t.Run(tc.attendu, func(t *testing.T) {
			s := nouveauRenduSimule(tc.phase, errors.New("boom"))

			_, err := s.engine.RenderPDF(context.Background(), "<html></html>")
			if err == nil || !strings.Contains(err.Error(), tc.attendu) {
				t.Fatalf("expected %q in error, got %v", tc.attendu, err)
			}
			if s.released != 1 {
				t.Errorf("browser must be released exactly once, got %d", s.released)
			}
		})
	}
}

func TestRenderPDFLibereLeNavigateurSurSucces(t *testing.T) {
	s := nouveauRenduSimule(0, nil)

	if _, err := s.engine.RenderPDF(context.Background(), "<html></html>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.released != 1 {
		t.Errorf("browser must be released exactly once, got %d", s.released)
	}
	if s.runs != 3 {
		t.Errorf("expected the three render phases, got %d run calls", s.runs)
	}
}
