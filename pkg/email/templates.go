package email

import "html/template"

const welcomeTemplate = `
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome aboard, {{.AgencyName}}!</h2>
  <p>Your AgencyHub workspace is ready. Start by adding your first leads
  and campaigns from the dashboard.</p>
</div>`

const leadNotificationTemplate = `
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New lead: {{.LeadName}}</h2>
  <ul>
    <li>Email: {{.LeadEmail}}</li>
    {{if .LeadPhone}}<li>Phone: {{.LeadPhone}}</li>{{end}}
    {{if .LeadCompany}}<li>Company: {{.LeadCompany}}</li>{{end}}
    <li>Source: {{.Source}}</li>
  </ul>
  <p>Open your pipeline to follow up.</p>
</div>`

const campaignDigestTemplate = `
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>{{.AgencyName}} — {{.Period}} report</h2>
  <p>Since {{.StartDate.Format "Jan 2, 2006"}}:</p>
  <ul>
    <li>Active campaigns: {{.Campaigns}}</li>
    <li>Total spend: ${{printf "%.2f" .TotalSpend}}</li>
    <li>Clicks: {{.TotalClicks}}</li>
    <li>New leads: {{.NewLeads}}</li>
  </ul>
</div>`

const expiryWarningTemplate = `
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Heads up, {{.AgencyName}}</h2>
  <p>Your <strong>{{.PlanName}}</strong> plan expires in {{.DaysLeft}} days,
  on {{.ExpiryDate.Format "Jan 2, 2006"}}. Renew to keep your workspace active.</p>
</div>`

func loadTemplates() (*template.Template, error) {
	t := template.New("emails")

	for name, body := range map[string]string{
		"welcome":           welcomeTemplate,
		"lead_notification": leadNotificationTemplate,
		"campaign_digest":   campaignDigestTemplate,
		"expiry_warning":    expiryWarningTemplate,
	} {
		if _, err := t.New(name).Parse(body); err != nil {
			return nil, err
		}
	}

	return t, nil
}
