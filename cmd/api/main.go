package main

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"agencyhub_backend/internal/controller"
	"agencyhub_backend/internal/middleware"
	"agencyhub_backend/internal/model"
	"agencyhub_backend/internal/service"
	"agencyhub_backend/pkg/config"
	"agencyhub_backend/pkg/cron"
	"agencyhub_backend/pkg/database"
	"agencyhub_backend/pkg/email"
	"agencyhub_backend/pkg/seed"
	"agencyhub_backend/pkg/subscription"
	"agencyhub_backend/pkg/utils/jwt"
	"agencyhub_backend/pkg/utils/storage"
)

type controllers struct {
	auth       *controller.AuthController
	settings   *controller.SettingsController
	leads      *controller.LeadController
	deals      *controller.DealController
	crm        *controller.CRMController
	clients    *controller.ClientController
	projects   *controller.ProjectController
	campaigns  *controller.CampaignController
	funnels    *controller.FunnelController
	assets     *controller.AssetController
	assistant  *controller.AssistantController
	scraper    *controller.ScraperController
	subs       *controller.SubscriptionController
	newsletter *controller.NewsletterController
}

func setupRoutes(app *fiber.App, db *gorm.DB, c *controllers) {
	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", c.auth.Register)
	auth.Post("/login", c.auth.Login)

	// Public newsletter capture
	api.Post("/newsletter/subscribe", c.newsletter.Subscribe)

	// Stripe webhook (signature-verified, no JWT)
	api.Post("/webhook", c.subs.HandleStripeWebhook)

	// Subscription plans are public, the rest is protected below
	api.Get("/subscriptions/plans", c.subs.ListPlans)

	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", c.auth.GetMe)

	// Settings
	settings := protected.Group("/settings")
	settings.Get("/profile", c.settings.GetProfile)
	settings.Put("/profile", c.settings.UpdateProfile)
	settings.Post("/avatar", c.settings.UploadAvatar)

	// CRM
	crm := protected.Group("/crm")
	crm.Get("/dashboard", c.crm.Dashboard)
	crm.Get("/pipeline", c.crm.Pipeline)
	crm.Get("/forecast", c.crm.Forecast)
	crm.Get("/analytics", c.crm.Analytics)
	crm.Get("/reports", c.crm.GenerateReport)

	leads := crm.Group("/leads")
	leads.Post("/", middleware.CheckPlanLimit(db, middleware.ResourceLeads), c.leads.Create)
	leads.Get("/", c.leads.List)
	leads.Get("/export", middleware.CheckFeatureAccess(db, subscription.CSVExport), c.leads.Export)
	leads.Put("/batch/status", c.leads.BatchUpdateStatus)
	leads.Get("/:id", c.leads.Get)
	leads.Put("/:id", c.leads.Update)
	leads.Delete("/:id", c.leads.Delete)
	leads.Put("/:id/status", c.leads.UpdateStatus)
	leads.Put("/:id/score", c.leads.Score)
	leads.Put("/:id/assign", c.leads.Assign)
	leads.Post("/:id/convert", c.leads.Convert)
	leads.Post("/:id/activities", c.leads.CreateActivity)
	leads.Get("/:id/activities", c.leads.ListActivities)
	leads.Put("/:id/activities/:activityId/complete", c.leads.CompleteActivity)

	deals := crm.Group("/deals")
	deals.Post("/", c.deals.Create)
	deals.Get("/", c.deals.List)
	deals.Get("/:id", c.deals.Get)
	deals.Put("/:id", c.deals.Update)
	deals.Delete("/:id", c.deals.Delete)
	deals.Put("/:id/stage", c.deals.UpdateStage)
	deals.Put("/:id/close", c.deals.Close)

	// Clients
	clients := protected.Group("/clients")
	clients.Post("/", c.clients.Create)
	clients.Get("/", c.clients.List)
	clients.Get("/:id", c.clients.Get)
	clients.Put("/:id", c.clients.Update)
	clients.Delete("/:id", c.clients.Delete)

	// Projects
	projects := protected.Group("/projects")
	projects.Post("/", c.projects.Create)
	projects.Get("/", c.projects.List)
	projects.Get("/summary", c.projects.Summary)
	projects.Get("/:id", c.projects.Get)
	projects.Put("/:id", c.projects.Update)
	projects.Delete("/:id", c.projects.Delete)

	// Ad campaigns
	campaigns := protected.Group("/ad-campaigns")
	campaigns.Post("/", middleware.CheckPlanLimit(db, middleware.ResourceCampaigns), c.campaigns.Create)
	campaigns.Get("/", c.campaigns.List)
	campaigns.Get("/summary", c.campaigns.Summary)
	campaigns.Get("/:id", c.campaigns.Get)
	campaigns.Put("/:id", c.campaigns.Update)
	campaigns.Delete("/:id", c.campaigns.Delete)
	campaigns.Put("/:id/metrics", c.campaigns.UpdateMetrics)
	campaigns.Get("/:id/performance", c.campaigns.Performance)
	campaigns.Post("/:id/creatives", c.campaigns.CreateCreative)
	campaigns.Get("/:id/creatives", c.campaigns.ListCreatives)
	campaigns.Put("/creatives/:creativeId/status", c.campaigns.UpdateCreativeStatus)
	campaigns.Delete("/creatives/:creativeId", c.campaigns.DeleteCreative)

	// Split tests
	splitTests := protected.Group("/split-tests", middleware.CheckFeatureAccess(db, subscription.SplitTesting))
	splitTests.Post("/", c.campaigns.CreateSplitTest)
	splitTests.Get("/", c.campaigns.ListSplitTests)
	splitTests.Put("/:id/complete", c.campaigns.CompleteSplitTest)

	// Funnels
	funnels := protected.Group("/funnels")
	funnels.Post("/", c.funnels.Create)
	funnels.Get("/", c.funnels.List)
	funnels.Get("/:id", c.funnels.Get)
	funnels.Put("/:id", c.funnels.Update)
	funnels.Delete("/:id", c.funnels.Delete)
	funnels.Get("/:id/stats", c.funnels.Stats)

	// Assets
	assets := protected.Group("/assets")
	assets.Post("/", middleware.CheckPlanLimit(db, middleware.ResourceAssets), c.assets.Upload)
	assets.Get("/", c.assets.List)
	assets.Get("/:id", c.assets.Get)
	assets.Put("/:id/archive", c.assets.Archive)
	assets.Delete("/:id", c.assets.Delete)

	// AI assistant
	assistant := protected.Group("/assistant", middleware.CheckFeatureAccess(db, subscription.AIAssistant))
	assistant.Post("/generate", middleware.CheckPlanLimit(db, middleware.ResourceGenerations), c.assistant.Generate)
	assistant.Get("/history", c.assistant.History)

	// Lead scraper
	scraper := protected.Group("/scraper", middleware.CheckFeatureAccess(db, subscription.LeadScraper))
	scraper.Post("/jobs", c.scraper.CreateJob)
	scraper.Get("/jobs", c.scraper.ListJobs)
	scraper.Get("/jobs/:jobId", c.scraper.GetJob)
	scraper.Get("/industries", c.scraper.Industries)

	// Subscriptions
	subs := protected.Group("/subscriptions")
	subs.Post("/subscribe", c.subs.Subscribe)
	subs.Post("/cancel", c.subs.Cancel)
	subs.Get("/my", c.subs.My)

	// Newsletter subscriber list
	protected.Get("/newsletter/subscribers", c.newsletter.List)
}

// errorHandler translates typed service errors into HTTP statuses.
func errorHandler(c *fiber.Ctx, err error) error {
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("Unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

func main() {
	cfg := config.Load()

	jwt.Init(cfg.JWT.Secret)

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}

	err = database.Migrate(db,
		&model.Tenant{},
		&model.User{},
		&model.Lead{},
		&model.Activity{},
		&model.Deal{},
		&model.Client{},
		&model.Project{},
		&model.AdCampaign{},
		&model.AdCreative{},
		&model.SplitTest{},
		&model.SalesFunnel{},
		&model.Asset{},
		&model.GeneratedContent{},
		&model.ScraperJob{},
		&model.Plan{},
		&model.TenantSubscription{},
		&model.Subscriber{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedPlans(db)

	emailService, err := email.NewService(cfg.Email.APIKey, cfg.Email.From)
	if err != nil {
		log.Printf("Email service disabled: %v", err)
	}

	storageService, err := storage.New(cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.AccessKey, cfg.Storage.SecretKey)
	if err != nil {
		log.Fatal("Could not initialize storage service:", err)
	}

	leadService := service.NewLeadService(db, emailService)
	activityService := service.NewActivityService(db)
	dealService := service.NewDealService(db)
	crmService := service.NewCRMService(db, leadService, dealService, cfg.Forecast)
	reportService := service.NewReportService(leadService, crmService)
	clientService := service.NewClientService(db)
	projectService := service.NewProjectService(db)
	campaignService := service.NewCampaignService(db)
	funnelService := service.NewFunnelService(db)
	assetService := service.NewAssetService(db, storageService)
	assistantService := service.NewAssistantService(db)
	scraperService := service.NewScraperService(db, leadService)
	newsletterService := service.NewNewsletterService(db)

	ctrls := &controllers{
		auth:       controller.NewAuthController(db, emailService),
		settings:   controller.NewSettingsController(db, storageService),
		leads:      controller.NewLeadController(leadService, activityService),
		deals:      controller.NewDealController(dealService),
		crm:        controller.NewCRMController(crmService, reportService),
		clients:    controller.NewClientController(clientService),
		projects:   controller.NewProjectController(projectService),
		campaigns:  controller.NewCampaignController(campaignService),
		funnels:    controller.NewFunnelController(funnelService),
		assets:     controller.NewAssetController(assetService),
		assistant:  controller.NewAssistantController(assistantService),
		scraper:    controller.NewScraperController(scraperService),
		subs:       controller.NewSubscriptionController(db, cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret),
		newsletter: controller.NewNewsletterController(newsletterService),
	}

	cron.InitCampaignStatsCron(db, emailService)
	cron.InitSubscriptionExpiryCron(db, emailService)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		BodyLimit:    30 * 1024 * 1024,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, db, ctrls)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
