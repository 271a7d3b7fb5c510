package model

import (
	"time"

	"gorm.io/gorm"
)

type DealStage string

const (
	DealStageProspect      DealStage = "PROSPECT"
	DealStageQualification DealStage = "QUALIFICATION"
	DealStageProposal      DealStage = "PROPOSAL"
	DealStageNegotiation   DealStage = "NEGOTIATION"
	DealStageClosedWon     DealStage = "CLOSED_WON"
	DealStageClosedLost    DealStage = "CLOSED_LOST"
)

// DealStages lists every valid stage, in pipeline order.
var DealStages = []DealStage{
	DealStageProspect,
	DealStageQualification,
	DealStageProposal,
	DealStageNegotiation,
	DealStageClosedWon,
	DealStageClosedLost,
}

var DealTransitions = map[DealStage]map[DealStage]bool{
	DealStageProspect:      {DealStageQualification: true, DealStageClosedLost: true},
	DealStageQualification: {DealStageProposal: true, DealStageClosedLost: true},
	DealStageProposal:      {DealStageNegotiation: true, DealStageClosedLost: true},
	DealStageNegotiation:   {DealStageClosedWon: true, DealStageClosedLost: true},
	DealStageClosedWon:     {},
	DealStageClosedLost:    {},
}

func (s DealStage) Valid() bool {
	_, ok := DealTransitions[s]
	return ok
}

func (s DealStage) CanTransitionTo(to DealStage) bool {
	next, ok := DealTransitions[s]
	if !ok {
		return false
	}
	return next[to]
}

func (s DealStage) Closed() bool {
	return s == DealStageClosedWon || s == DealStageClosedLost
}

type Deal struct {
	gorm.Model
	TenantID uint `json:"tenant_id" gorm:"index;not null"`

	Title       string    `json:"title" gorm:"not null"`
	Value       float64   `json:"value"`
	Stage       DealStage `json:"stage" gorm:"default:'PROSPECT';index"`
	Probability int       `json:"probability"` // 0-100

	LeadID   *uint `json:"lead_id" gorm:"index"`
	ClientID *uint `json:"client_id" gorm:"index"`

	ExpectedCloseAt *time.Time `json:"expected_close_at"`
	ActualCloseAt   *time.Time `json:"actual_close_at"`

	Lead   *Lead   `json:"-" gorm:"foreignKey:LeadID"`
	Client *Client `json:"-" gorm:"foreignKey:ClientID"`
}
