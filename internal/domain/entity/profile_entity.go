package entity

import "time"

type Availability string

const (
	AvailabilityFullTime  Availability = "Full-Time"
	AvailabilityPartTime  Availability = "Part-Time"
	AvailabilityFreelance Availability = "Freelance"
)

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "Junior"
	ExperienceMid    ExperienceLevel = "Mid"
	ExperienceSenior ExperienceLevel = "Senior"
)

// Profile extends a User with talent details. A user owns at most one profile.
type Profile struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Skills          []string        `json:"skills"`
	Portfolio       string          `json:"portfolio"`
	Availability    Availability    `json:"availability"`
	HourlyRate      float64         `json:"hourlyRate"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Bio             string          `json:"bio,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
