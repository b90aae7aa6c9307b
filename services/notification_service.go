// services/notification_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"plombier-backend/models"
)

// NotificationService dispatches the contact-form emails through the
// hosted EmailJS transactional API. Dispatch is fire-and-forget from
// the caller's point of view: a failure is logged, never retried.
type NotificationService struct {
	Client  *http.Client
	BaseURL string

	serviceID      string
	templateAdmin  string
	templateClient string
	publicKey      string
	contactEmail   string
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		Client:         &http.Client{Timeout: 10 * time.Second},
		BaseURL:        "https://api.emailjs.com/api/v1.0/email/send",
		serviceID:      os.Getenv("EMAILJS_SERVICE_ID"),
		templateAdmin:  os.Getenv("EMAILJS_TEMPLATE_ID_ADMIN"),
		templateClient: os.Getenv("EMAILJS_TEMPLATE_ID_CLIENT"),
		publicKey:      os.Getenv("EMAILJS_PUBLIC_KEY"),
		contactEmail:   os.Getenv("CONTACT_EMAIL"),
	}
}

// Enabled reports whether the EmailJS credentials are configured.
func (s *NotificationService) Enabled() bool {
	return s.serviceID != "" && s.publicKey != ""
}

type emailJSPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (s *NotificationService) send(templateID string, params map[string]string) error {
	body, err := json.Marshal(emailJSPayload{
		ServiceID:      s.serviceID,
		TemplateID:     templateID,
		UserID:         s.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	resp, err := s.Client.Post(s.BaseURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("statut %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// SendDemandeContact sends the two templated emails for a contact-form
// submission: one to the business inbox, one back to the requester.
func (s *NotificationService) SendDemandeContact(d models.RendezVous) error {
	dateRdv := d.Date.Format("02.01.2006")
	creneau := models.CreneauLibelle(d.Creneau)

	if err := s.send(s.templateAdmin, map[string]string{
		"from_name":  d.Nom,
		"from_email": d.Email,
		"phone":      d.Telephone,
		"date":       dateRdv,
		"time_slot":  creneau,
		"message":    d.Message,
		"to_email":   s.contactEmail,
	}); err != nil {
		return fmt.Errorf("email administrateur: %w", err)
	}

	if err := s.send(s.templateClient, map[string]string{
		"to_name":          d.Nom,
		"to_email":         d.Email,
		"client_name":      d.Nom,
		"appointment_date": dateRdv,
		"time_slot":        creneau,
		"from_name":        "Plombier Chauffagiste",
		"reply_to":         s.contactEmail,
	}); err != nil {
		return fmt.Errorf("email de confirmation: %w", err)
	}

	return nil
}
