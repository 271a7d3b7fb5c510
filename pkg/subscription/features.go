package subscription

type PlanType string
type Feature string

const (
	StarterPlan    PlanType = "STARTER"
	AgencyPlan     PlanType = "AGENCY"
	EnterprisePlan PlanType = "ENTERPRISE"
)

const (
	LeadScraper    Feature = "lead_scraper"
	AIAssistant    Feature = "ai_assistant"
	SplitTesting   Feature = "split_testing"
	NewsletterForm Feature = "newsletter_form"
	CSVExport      Feature = "csv_export"
)

type PlanLimits struct {
	MaxLeads       int
	MaxCampaigns   int
	MaxAssets      int
	MaxGenerations int
}

var planLimits = map[PlanType]PlanLimits{
	StarterPlan:    {MaxLeads: 200, MaxCampaigns: 5, MaxAssets: 100, MaxGenerations: 50},
	AgencyPlan:     {MaxLeads: 5000, MaxCampaigns: 50, MaxAssets: 2000, MaxGenerations: 1000},
	EnterprisePlan: {MaxLeads: 100000, MaxCampaigns: 1000, MaxAssets: 50000, MaxGenerations: 20000},
}

var planFeatures = map[PlanType]map[Feature]bool{
	StarterPlan: {
		NewsletterForm: true,
		CSVExport:      true,
	},
	AgencyPlan: {
		LeadScraper:    true,
		AIAssistant:    true,
		NewsletterForm: true,
		CSVExport:      true,
	},
	EnterprisePlan: {
		LeadScraper:    true,
		AIAssistant:    true,
		SplitTesting:   true,
		NewsletterForm: true,
		CSVExport:      true,
	},
}

func GetPlanLimits(plan PlanType) PlanLimits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits[StarterPlan]
}

func CanUseFeature(plan PlanType, feature Feature) bool {
	features, ok := planFeatures[plan]
	if !ok {
		return false
	}
	return features[feature]
}

// PlanTypeFromName maps a plans-table name to its limit tier.
func PlanTypeFromName(name string) PlanType {
	switch name {
	case "Agency Plan":
		return AgencyPlan
	case "Enterprise Plan":
		return EnterprisePlan
	default:
		return StarterPlan
	}
}
