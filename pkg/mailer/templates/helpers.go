package templates

import (
	"strconv"
	"time"

	"github.com/oksasatya/go-talent-marketplace/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithClient(name, email string) Option {
	return func(d *EmailData) {
		d.ClientName = name
		d.ClientEmail = email
	}
}

// WithBudget formats an optional budget; nil leaves it empty.
func WithBudget(budget *float64) Option {
	return func(d *EmailData) {
		if budget != nil {
			d.Budget = strconv.FormatFloat(*budget, 'f', -1, 64)
		}
	}
}

// NewBaseEmailData fills common fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
	}
	if cfg != nil {
		d.CompanyName = cfg.CompanyName
		d.AppName = cfg.AppName
		d.SupportURL = cfg.SupportURL
		d.AppURL = cfg.AppURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}

// NewHireRequestData addresses the talent; client details come in through WithClient.
func NewHireRequestData(cfg *config.Config, talentName, talentEmail, details, projectDetails string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, HireRequest, talentName, talentEmail, opts...)
	d.Details = details
	d.ProjectDetails = projectDetails
	return ToMap(d)
}
