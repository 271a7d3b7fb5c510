package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

// Service sends transactional email through the Resend HTTPS API.
type Service struct {
	apiKey    string
	from      string
	endpoint  string
	templates *template.Template
}

type emailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

type WelcomeEmailData struct {
	AgencyName string
}

type LeadNotificationData struct {
	LeadName    string
	LeadEmail   string
	LeadPhone   string
	LeadCompany string
	Source      string
}

type CampaignDigestData struct {
	AgencyName  string
	Period      string
	Campaigns   int64
	TotalSpend  float64
	TotalClicks int64
	NewLeads    int64
	StartDate   time.Time
}

type SubscriptionExpiryWarningData struct {
	AgencyName string
	PlanName   string
	DaysLeft   int
	ExpiryDate time.Time
}

func NewService(apiKey, from string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &Service{
		apiKey:    apiKey,
		from:      from,
		endpoint:  "https://api.resend.com/emails",
		templates: templates,
	}, nil
}

func (s *Service) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	payload := emailPayload{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", s.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Resend API error: status %d, body %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

func (s *Service) SendWelcomeEmail(to, agencyName string) error {
	return s.sendTemplateEmail(to, "Welcome to AgencyHub! 🎉", "welcome", WelcomeEmailData{
		AgencyName: agencyName,
	})
}

func (s *Service) SendLeadNotificationEmail(to, leadName, leadEmail, leadPhone, leadCompany, source string) error {
	return s.sendTemplateEmail(to, "New Lead in Your Pipeline 📋", "lead_notification", LeadNotificationData{
		LeadName:    leadName,
		LeadEmail:   leadEmail,
		LeadPhone:   leadPhone,
		LeadCompany: leadCompany,
		Source:      source,
	})
}

func (s *Service) SendCampaignDigest(to string, data CampaignDigestData) error {
	subject := fmt.Sprintf("Your %s campaign report", data.Period)
	return s.sendTemplateEmail(to, subject, "campaign_digest", data)
}

func (s *Service) SendSubscriptionExpiryWarning(to, agencyName, planName string, expiresAt time.Time, daysLeft int) error {
	return s.sendTemplateEmail(to, "Your subscription is about to expire", "expiry_warning", SubscriptionExpiryWarningData{
		AgencyName: agencyName,
		PlanName:   planName,
		DaysLeft:   daysLeft,
		ExpiryDate: expiresAt,
	})
}
