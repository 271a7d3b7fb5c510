package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"agencyhub_backend/internal/model"
	"agencyhub_backend/pkg/email"
)

type campaignDigestRow struct {
	TenantID    uint
	OwnerEmail  string
	TenantName  string
	Campaigns   int64
	TotalSpend  float64
	TotalClicks int64
}

// InitCampaignStatsCron schedules the weekly (Sunday 20:00) and monthly
// (1st, 20:00) campaign digest emails.
func InitCampaignStatsCron(db *gorm.DB, emailService *email.Service) {
	if emailService == nil {
		log.Println("Campaign stats cron disabled: no email service")
		return
	}

	c := cron.New()

	_, err := c.AddFunc("0 20 * * 0", func() {
		sendCampaignDigest(db, emailService, time.Now().AddDate(0, 0, -7), "weekly")
	})
	if err != nil {
		log.Printf("Could not initialize weekly campaign stats cron: %v", err)
		return
	}

	_, err = c.AddFunc("0 20 1 * *", func() {
		sendCampaignDigest(db, emailService, time.Now().AddDate(0, -1, 0), "monthly")
	})
	if err != nil {
		log.Printf("Could not initialize monthly campaign stats cron: %v", err)
		return
	}

	c.Start()
}

func sendCampaignDigest(db *gorm.DB, emailService *email.Service, startDate time.Time, period string) {
	log.Printf("Running %s campaign digest since %s", period, startDate.Format("2006-01-02"))

	var rows []campaignDigestRow
	err := db.Raw(`
        SELECT
            t.id as tenant_id,
            t.name as tenant_name,
            u.email as owner_email,
            COUNT(DISTINCT c.id) as campaigns,
            COALESCE(SUM(c.spend), 0) as total_spend,
            COALESCE(SUM((c.metrics->>'clicks')::bigint), 0) as total_clicks
        FROM tenants t
        JOIN users u ON u.tenant_id = t.id AND u.role = 'owner'
        LEFT JOIN ad_campaigns c ON c.tenant_id = t.id AND c.updated_at >= ?
        WHERE t.status = 'active'
        GROUP BY t.id
        HAVING COUNT(DISTINCT c.id) > 0
    `, startDate).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching campaign digest stats: %v", err)
		return
	}

	for _, row := range rows {
		var newLeads int64
		if err := db.Model(&model.Lead{}).
			Where("tenant_id = ? AND created_at >= ?", row.TenantID, startDate).
			Count(&newLeads).Error; err != nil {
			log.Printf("Error counting leads for tenant %d: %v", row.TenantID, err)
			continue
		}

		err := emailService.SendCampaignDigest(row.OwnerEmail, email.CampaignDigestData{
			AgencyName:  row.TenantName,
			Period:      period,
			Campaigns:   row.Campaigns,
			TotalSpend:  row.TotalSpend,
			TotalClicks: row.TotalClicks,
			NewLeads:    newLeads,
			StartDate:   startDate,
		})
		if err != nil {
			log.Printf("Error sending campaign digest to %s: %v", row.OwnerEmail, err)
		}
	}
}
