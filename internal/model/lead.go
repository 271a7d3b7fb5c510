package model

import (
	"time"

	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "NEW"
	LeadStatusContacted    LeadStatus = "CONTACTED"
	LeadStatusQualified    LeadStatus = "QUALIFIED"
	LeadStatusProposalSent LeadStatus = "PROPOSAL_SENT"
	LeadStatusNegotiation  LeadStatus = "NEGOTIATION"
	LeadStatusClosedWon    LeadStatus = "CLOSED_WON"
	LeadStatusClosedLost   LeadStatus = "CLOSED_LOST"
	LeadStatusDisqualified LeadStatus = "DISQUALIFIED"
)

// LeadStatuses lists every valid status, in pipeline order.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposalSent,
	LeadStatusNegotiation,
	LeadStatusClosedWon,
	LeadStatusClosedLost,
	LeadStatusDisqualified,
}

// LeadTransitions is the set of allowed status moves. Terminal statuses
// have no outgoing edges; DISQUALIFIED can be recycled back to NEW.
var LeadTransitions = map[LeadStatus]map[LeadStatus]bool{
	LeadStatusNew:          {LeadStatusContacted: true, LeadStatusDisqualified: true},
	LeadStatusContacted:    {LeadStatusQualified: true, LeadStatusDisqualified: true},
	LeadStatusQualified:    {LeadStatusProposalSent: true, LeadStatusDisqualified: true},
	LeadStatusProposalSent: {LeadStatusNegotiation: true, LeadStatusClosedLost: true},
	LeadStatusNegotiation:  {LeadStatusClosedWon: true, LeadStatusClosedLost: true},
	LeadStatusClosedWon:    {},
	LeadStatusClosedLost:   {},
	LeadStatusDisqualified: {LeadStatusNew: true},
}

func (s LeadStatus) Valid() bool {
	_, ok := LeadTransitions[s]
	return ok
}

func (s LeadStatus) CanTransitionTo(to LeadStatus) bool {
	next, ok := LeadTransitions[s]
	if !ok {
		return false
	}
	return next[to]
}

type LeadSource string

const (
	LeadSourceWebsite      LeadSource = "WEBSITE"
	LeadSourceReferral     LeadSource = "REFERRAL"
	LeadSourceSocialMedia  LeadSource = "SOCIAL_MEDIA"
	LeadSourceColdOutreach LeadSource = "COLD_OUTREACH"
	LeadSourcePaidAds      LeadSource = "PAID_ADS"
	LeadSourceEvent        LeadSource = "EVENT"
	LeadSourceScraper      LeadSource = "SCRAPER"
	LeadSourceOther        LeadSource = "OTHER"
)

var leadSources = map[LeadSource]bool{
	LeadSourceWebsite:      true,
	LeadSourceReferral:     true,
	LeadSourceSocialMedia:  true,
	LeadSourceColdOutreach: true,
	LeadSourcePaidAds:      true,
	LeadSourceEvent:        true,
	LeadSourceScraper:      true,
	LeadSourceOther:        true,
}

func (s LeadSource) Valid() bool {
	return leadSources[s]
}

type Lead struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"index;not null"`

	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"index"`
	Phone   string `json:"phone"`
	Company string `json:"company"`

	Source LeadSource `json:"source" gorm:"default:'OTHER'"`
	Status LeadStatus `json:"status" gorm:"default:'NEW';index"`
	Score  float64    `json:"score"`
	Notes  string     `json:"notes" gorm:"type:text"`

	AssigneeID *uint `json:"assignee_id" gorm:"index"`
	ClientID   *uint `json:"client_id" gorm:"index"`

	Assignee *User   `json:"-" gorm:"foreignKey:AssigneeID"`
	Client   *Client `json:"-" gorm:"foreignKey:ClientID"`

	Activities []Activity `json:"activities,omitempty" gorm:"foreignKey:LeadID"`
}

type ActivityType string

const (
	ActivityTypeCall    ActivityType = "CALL"
	ActivityTypeEmail   ActivityType = "EMAIL"
	ActivityTypeMeeting ActivityType = "MEETING"
	ActivityTypeTask    ActivityType = "TASK"
	ActivityTypeNote    ActivityType = "NOTE"
)

var activityTypes = map[ActivityType]bool{
	ActivityTypeCall:    true,
	ActivityTypeEmail:   true,
	ActivityTypeMeeting: true,
	ActivityTypeTask:    true,
	ActivityTypeNote:    true,
}

func (t ActivityType) Valid() bool {
	return activityTypes[t]
}

// Activity is a typed interaction record attached to a lead.
type Activity struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"index;not null"`
	LeadID   uint `json:"lead_id" gorm:"index;not null"`

	Type        ActivityType `json:"type" gorm:"not null"`
	Subject     string       `json:"subject" gorm:"not null"`
	Description string       `json:"description" gorm:"type:text"`
	ScheduledAt *time.Time   `json:"scheduled_at"`
	CompletedAt *time.Time   `json:"completed_at"`

	Lead Lead `json:"-" gorm:"foreignKey:LeadID"`
}
