package controller

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/customer"
	"github.com/stripe/stripe-go/v74/subscription"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"

	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
)

type SubscriptionController struct {
	db            *gorm.DB
	webhookSecret string
}

func NewSubscriptionController(db *gorm.DB, stripeKey, webhookSecret string) *SubscriptionController {
	stripe.Key = stripeKey
	return &SubscriptionController{db: db, webhookSecret: webhookSecret}
}

func (ctrl *SubscriptionController) ListPlans(c *fiber.Ctx) error {
	var plans []model.Plan
	if err := ctrl.db.Order("price asc").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch plans",
		})
	}

	return c.JSON(plans)
}

type subscribeInput struct {
	PlanID string `json:"plan_id"` // stripe price id
}

func (ctrl *SubscriptionController) Subscribe(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	input := new(subscribeInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var plan model.Plan
	if err := ctrl.db.First(&plan, "stripe_price_id = ?", input.PlanID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}

	var tenant model.Tenant
	if err := ctrl.db.First(&tenant, claims.TenantID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tenant not found",
		})
	}

	customerParams := &stripe.CustomerParams{
		Email: stripe.String(claims.Email),
		Name:  stripe.String(tenant.Name),
	}

	stripeCustomer, err := customer.New(customerParams)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create Stripe customer",
		})
	}

	subscriptionParams := &stripe.SubscriptionParams{
		Customer: stripe.String(stripeCustomer.ID),
		Items: []*stripe.SubscriptionItemsParams{
			{
				Price: stripe.String(plan.StripePriceID),
			},
		},
	}

	stripeSubscription, err := subscription.New(subscriptionParams)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create subscription",
		})
	}

	expiresAt := time.Unix(stripeSubscription.CurrentPeriodEnd, 0)

	tenantSub := model.TenantSubscription{
		TenantID:             claims.TenantID,
		PlanID:               plan.ID,
		Status:               "active",
		StripeCustomerID:     stripeCustomer.ID,
		StripeSubscriptionID: stripeSubscription.ID,
		ExpiresAt:            &expiresAt,
	}

	if err := ctrl.db.Create(&tenantSub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save subscription",
		})
	}

	return c.JSON(fiber.Map{
		"message":      "Subscription created successfully",
		"subscription": tenantSub,
	})
}

func (ctrl *SubscriptionController) Cancel(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var tenantSub model.TenantSubscription
	if err := ctrl.db.Where("tenant_id = ? AND status = ?", claims.TenantID, "active").
		Preload("Plan").
		First(&tenantSub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No active subscription found",
		})
	}

	if _, err := subscription.Cancel(tenantSub.StripeSubscriptionID, nil); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not cancel Stripe subscription",
		})
	}

	tenantSub.Status = "cancelled"
	if err := ctrl.db.Save(&tenantSub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update subscription status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Subscription cancelled successfully",
	})
}

func (ctrl *SubscriptionController) My(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var tenantSub model.TenantSubscription
	if err := ctrl.db.Where("tenant_id = ? AND status = ?", claims.TenantID, "active").
		Preload("Plan").First(&tenantSub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No active subscription found",
		})
	}

	return c.JSON(tenantSub)
}

func (ctrl *SubscriptionController) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEvent(payload, signatureHeader, ctrl.webhookSecret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	log.Printf("Processing Stripe webhook event: %s", event.Type)

	switch event.Type {
	case "customer.subscription.deleted":
		var subData struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(event.Data.Raw, &subData); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}

		if err := ctrl.db.Model(&model.TenantSubscription{}).
			Where("stripe_subscription_id = ?", subData.ID).
			Update("status", "cancelled").Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update subscription status",
			})
		}

		log.Printf("Subscription %s cancelled via webhook", subData.ID)

	case "customer.subscription.updated":
		var subData struct {
			ID               string `json:"id"`
			CurrentPeriodEnd int64  `json:"current_period_end"`
		}
		if err := json.Unmarshal(event.Data.Raw, &subData); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}

		expiresAt := time.Unix(subData.CurrentPeriodEnd, 0)
		if err := ctrl.db.Model(&model.TenantSubscription{}).
			Where("stripe_subscription_id = ?", subData.ID).
			Update("expires_at", expiresAt).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update subscription expiry",
			})
		}

		log.Printf("Subscription %s expiry updated via webhook", subData.ID)
	}

	return c.SendStatus(fiber.StatusOK)
}
