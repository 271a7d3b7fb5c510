package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"agencyhub_backend/internal/model"
	"agencyhub_backend/pkg/email"
)

// InitSubscriptionExpiryCron checks daily at 09:00 for subscriptions
// expiring in 7 or 3 days and mails the tenant owner.
func InitSubscriptionExpiryCron(db *gorm.DB, emailService *email.Service) {
	if emailService == nil {
		log.Println("Subscription expiry cron disabled: no email service")
		return
	}

	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		checkExpiringSubscriptions(db, emailService)
	})
	if err != nil {
		log.Printf("Could not initialize subscription expiry cron: %v", err)
		return
	}

	c.Start()
}

func checkExpiringSubscriptions(db *gorm.DB, emailService *email.Service) {
	log.Println("Checking for expiring subscriptions...")

	warningDays := []int{7, 3}

	for _, days := range warningDays {
		targetDate := time.Now().AddDate(0, 0, days).Format("2006-01-02")

		var subs []model.TenantSubscription
		err := db.Where("DATE(expires_at) = ? AND status = ?", targetDate, "active").
			Preload("Tenant").
			Preload("Plan").
			Find(&subs).Error
		if err != nil {
			log.Printf("Error fetching expiring subscriptions: %v", err)
			continue
		}

		log.Printf("Found %d subscriptions expiring in %d days", len(subs), days)

		for _, sub := range subs {
			if sub.ExpiresAt == nil {
				continue
			}

			var owner model.User
			if err := db.Where("tenant_id = ? AND role = ?", sub.TenantID, model.RoleOwner).
				First(&owner).Error; err != nil {
				log.Printf("No owner found for tenant %d: %v", sub.TenantID, err)
				continue
			}

			err := emailService.SendSubscriptionExpiryWarning(
				owner.Email,
				sub.Tenant.Name,
				sub.Plan.Name,
				*sub.ExpiresAt,
				days,
			)
			if err != nil {
				log.Printf("Error sending expiry warning to %s: %v", owner.Email, err)
			}
		}
	}
}
