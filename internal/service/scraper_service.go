package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"agencyhub_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScraperService runs mock lead-scraper jobs. Results come from canned
// datasets; a real scraping backend would slot in behind Run.
type ScraperService struct {
	db    *gorm.DB
	leads *LeadService
}

func NewScraperService(db *gorm.DB, leads *LeadService) *ScraperService {
	return &ScraperService{db: db, leads: leads}
}

type ScrapedLead struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// scraperDatasets is the canned result pool, keyed by industry.
var scraperDatasets = map[string][]ScrapedLead{
	"restaurants": {
		{Name: "Maria Santos", Email: "maria@bellacucina.example", Phone: "+1-555-0101", Company: "Bella Cucina"},
		{Name: "James Chen", Email: "james@goldenwok.example", Phone: "+1-555-0102", Company: "Golden Wok"},
		{Name: "Sophie Laurent", Email: "sophie@lepetitbistro.example", Phone: "+1-555-0103", Company: "Le Petit Bistro"},
		{Name: "Marco Rossi", Email: "marco@trattoriaroma.example", Phone: "+1-555-0104", Company: "Trattoria Roma"},
		{Name: "Aisha Patel", Email: "aisha@spiceroute.example", Phone: "+1-555-0105", Company: "Spice Route"},
	},
	"fitness": {
		{Name: "Derek Stone", Email: "derek@ironworksgym.example", Phone: "+1-555-0201", Company: "Ironworks Gym"},
		{Name: "Lena Park", Email: "lena@flowyoga.example", Phone: "+1-555-0202", Company: "Flow Yoga Studio"},
		{Name: "Carlos Mendez", Email: "carlos@peakperformance.example", Phone: "+1-555-0203", Company: "Peak Performance"},
		{Name: "Nina Kowalski", Email: "nina@crossfitcentral.example", Phone: "+1-555-0204", Company: "CrossFit Central"},
	},
	"real_estate": {
		{Name: "Patricia Wells", Email: "patricia@wellsrealty.example", Phone: "+1-555-0301", Company: "Wells Realty"},
		{Name: "Tom Okafor", Email: "tom@urbanestates.example", Phone: "+1-555-0302", Company: "Urban Estates"},
		{Name: "Rachel Kim", Email: "rachel@homebridge.example", Phone: "+1-555-0303", Company: "Homebridge Group"},
	},
	"ecommerce": {
		{Name: "Ben Fischer", Email: "ben@cartloop.example", Phone: "+1-555-0401", Company: "Cartloop"},
		{Name: "Yuki Tanaka", Email: "yuki@shopstream.example", Phone: "+1-555-0402", Company: "Shopstream"},
		{Name: "Olivia Brown", Email: "olivia@boxedgoods.example", Phone: "+1-555-0403", Company: "Boxed Goods"},
		{Name: "Ahmed Hassan", Email: "ahmed@quickcart.example", Phone: "+1-555-0404", Company: "QuickCart"},
	},
}

type CreateScraperJobInput struct {
	Industry string `json:"industry"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

func (in *CreateScraperJobInput) Validate() error {
	if in.Industry == "" {
		return NewValidation("industry is required")
	}
	if in.Limit < 0 {
		return NewValidation("limit cannot be negative")
	}
	return nil
}

// CreateJob records the job and runs it. The runner catches every
// failure, logs it and marks the job FAILED; it never propagates.
func (s *ScraperService) CreateJob(tenantID, userID uint, in *CreateScraperJobInput) (*model.ScraperJob, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	job := model.ScraperJob{
		TenantID: tenantID,
		JobID:    uuid.NewString(),
		Industry: strings.ToLower(in.Industry),
		Location: in.Location,
		Limit:    in.Limit,
		Status:   model.ScraperJobPending,
		UserID:   userID,
	}

	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}

	s.run(&job)

	return &job, nil
}

func (s *ScraperService) run(job *model.ScraperJob) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Scraper job %s panicked: %v", job.JobID, r)
			s.markFailed(job, fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := s.db.Model(job).Update("status", model.ScraperJobRunning).Error; err != nil {
		log.Printf("Scraper job %s: could not mark running: %v", job.JobID, err)
		s.markFailed(job, err.Error())
		return
	}

	results, err := s.scrape(job.Industry, job.Limit)
	if err != nil {
		log.Printf("Scraper job %s failed: %v", job.JobID, err)
		s.markFailed(job, err.Error())
		return
	}

	for _, scraped := range results {
		_, err := s.leads.Create(job.TenantID, &CreateLeadInput{
			Name:    scraped.Name,
			Email:   scraped.Email,
			Phone:   scraped.Phone,
			Company: scraped.Company,
			Source:  model.LeadSourceScraper,
			Notes:   fmt.Sprintf("Scraped from %s (%s)", job.Industry, job.Location),
		})
		if err != nil {
			log.Printf("Scraper job %s: could not store lead %s: %v", job.JobID, scraped.Email, err)
			s.markFailed(job, err.Error())
			return
		}
	}

	payload, err := json.Marshal(results)
	if err != nil {
		s.markFailed(job, err.Error())
		return
	}

	updates := map[string]interface{}{
		"status":      model.ScraperJobCompleted,
		"leads_found": len(results),
		"result":      datatypes.JSON(payload),
	}
	if err := s.db.Model(job).Updates(updates).Error; err != nil {
		log.Printf("Scraper job %s: could not mark completed: %v", job.JobID, err)
	}
}

func (s *ScraperService) markFailed(job *model.ScraperJob, reason string) {
	updates := map[string]interface{}{
		"status": model.ScraperJobFailed,
		"error":  reason,
	}
	if err := s.db.Model(job).Updates(updates).Error; err != nil {
		log.Printf("Scraper job %s: could not mark failed: %v", job.JobID, err)
	}
}

func (s *ScraperService) scrape(industry string, limit int) ([]ScrapedLead, error) {
	dataset, ok := scraperDatasets[industry]
	if !ok {
		return nil, fmt.Errorf("no dataset for industry %q", industry)
	}

	if limit > 0 && limit < len(dataset) {
		dataset = dataset[:limit]
	}
	return dataset, nil
}

// Industries lists the datasets the mock scraper knows about.
func (s *ScraperService) Industries() []string {
	industries := make([]string, 0, len(scraperDatasets))
	for industry := range scraperDatasets {
		industries = append(industries, industry)
	}
	return industries
}

func (s *ScraperService) GetJob(tenantID uint, jobID string) (*model.ScraperJob, error) {
	var job model.ScraperJob
	err := s.db.Where("tenant_id = ? AND job_id = ?", tenantID, jobID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFound("scraper job")
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *ScraperService) ListJobs(tenantID uint) ([]model.ScraperJob, error) {
	var jobs []model.ScraperJob
	err := s.db.Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&jobs).Error
	return jobs, err
}
