package entity

import "time"

// HireRequest is a proposal from a client to a talent.
// Either Details or ProjectDetails is set depending on how it was submitted; Budget is optional.
type HireRequest struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"clientId"`
	TalentID       string    `json:"talentId"`
	Details        string    `json:"details,omitempty"`
	ProjectDetails string    `json:"projectDetails,omitempty"`
	Budget         *float64  `json:"budget,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
