package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"agencyhub_backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssistantService generates marketing copy by deterministic template
// interpolation and keeps a per-tenant history of outputs.
type AssistantService struct {
	db        *gorm.DB
	templates map[model.ContentType]*template.Template
}

type GenerateInput struct {
	Type   model.ContentType `json:"type"`
	Params GenerateParams    `json:"params"`
}

type GenerateParams struct {
	Product  string `json:"product"`
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
	Platform string `json:"platform"`
	Keywords string `json:"keywords"`
}

func (in *GenerateInput) Validate() error {
	if !in.Type.Valid() {
		return NewValidation("unknown content type: %s", in.Type)
	}
	if in.Params.Product == "" {
		return NewValidation("params.product is required")
	}
	return nil
}

const adCopyTemplate = `{{.Headline}}

Discover {{.Product}} — built for {{.Audience}}. {{.CTA}}`

const emailTemplate = `Subject: {{.Product}} for {{.Audience}}

Hi there,

We help teams like yours get more out of {{.Product}}.{{if .Keywords}} Whether you care about {{.Keywords}}, we have you covered.{{end}}

{{.CTA}}

Best,
The team`

const socialPostTemplate = `{{.Hook}} {{.Product}} is here for {{.Audience}}.{{if .Keywords}} #{{.Hashtags}}{{end}} {{.CTA}}`

const blogOutlineTemplate = `# {{.Product}}: a guide for {{.Audience}}

1. Why {{.Audience}} struggle today
2. What {{.Product}} changes
3. Getting started with {{.Product}}{{if .Keywords}}
4. Deep dive: {{.Keywords}}{{end}}
5. Next steps`

func NewAssistantService(db *gorm.DB) *AssistantService {
	templates := map[model.ContentType]*template.Template{
		model.ContentTypeAdCopy:      template.Must(template.New("ad_copy").Parse(adCopyTemplate)),
		model.ContentTypeEmail:       template.Must(template.New("email").Parse(emailTemplate)),
		model.ContentTypeSocialPost:  template.Must(template.New("social_post").Parse(socialPostTemplate)),
		model.ContentTypeBlogOutline: template.Must(template.New("blog_outline").Parse(blogOutlineTemplate)),
	}
	return &AssistantService{db: db, templates: templates}
}

type templateData struct {
	Product  string
	Audience string
	Keywords string
	Headline string
	Hook     string
	CTA      string
	Hashtags string
}

func buildTemplateData(p GenerateParams) templateData {
	audience := p.Audience
	if audience == "" {
		audience = "your customers"
	}

	tone := strings.ToLower(p.Tone)
	data := templateData{
		Product:  p.Product,
		Audience: audience,
		Keywords: p.Keywords,
		Hashtags: strings.ReplaceAll(strings.ReplaceAll(p.Keywords, ", ", " #"), " ", ""),
	}

	switch tone {
	case "urgent":
		data.Headline = "Don't miss out on " + p.Product + "!"
		data.Hook = "Last chance:"
		data.CTA = "Act now — offer ends soon."
	case "playful":
		data.Headline = "Say hello to " + p.Product + " 👋"
		data.Hook = "Guess what?"
		data.CTA = "Come see what the fuss is about."
	default:
		data.Headline = "Introducing " + p.Product
		data.Hook = "New:"
		data.CTA = "Learn more today."
	}

	if p.Platform != "" {
		data.CTA = data.CTA + " (" + p.Platform + ")"
	}

	return data
}

// Generate renders the template for the requested type and persists the
// output with its prompt params.
func (s *AssistantService) Generate(tenantID, userID uint, in *GenerateInput) (*model.GeneratedContent, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tmpl := s.templates[in.Type]

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildTemplateData(in.Params)); err != nil {
		return nil, err
	}

	params, err := json.Marshal(in.Params)
	if err != nil {
		return nil, err
	}

	content := model.GeneratedContent{
		TenantID: tenantID,
		Type:     in.Type,
		Params:   datatypes.JSON(params),
		Content:  buf.String(),
		UserID:   userID,
	}

	if err := s.db.Create(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (s *AssistantService) History(tenantID uint, offset, limit int) ([]model.GeneratedContent, int64, error) {
	query := s.db.Model(&model.GeneratedContent{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var history []model.GeneratedContent
	err := query.Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, 0, err
	}

	return history, total, nil
}
