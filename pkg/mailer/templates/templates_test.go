package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-talent-marketplace/config"
)

func testConfig() *config.Config {
	return &config.Config{AppName: "TalentHub", CompanyName: "TalentHub Inc.", AppURL: "https://talenthub.example", SupportURL: "https://talenthub.example/help"}
}

func TestRender_Welcome(t *testing.T) {
	data := NewWelcomeData(testConfig(), "Ann", "ann@x.com")

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to TalentHub, Ann", subject)
	assert.Contains(t, text, "ann@x.com")
	assert.Contains(t, text, "https://talenthub.example")
	assert.Contains(t, html, "<strong>ann@x.com</strong>")
}

func TestRender_HireRequest(t *testing.T) {
	budget := 500.0
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	data := NewHireRequestData(testConfig(), "Tom", "tom@x.com", "", "Build a site",
		WithClient("Ann", "ann@x.com"), WithBudget(&budget), WithTime(at))

	subject, text, html, err := Render(HireRequest, data)
	require.NoError(t, err)
	assert.Equal(t, "Ann wants to hire you", subject)
	assert.Contains(t, text, "Project: Build a site")
	assert.Contains(t, text, "Budget: 500")
	assert.Contains(t, text, "01 March 2026, 09:30")
	assert.NotContains(t, text, "Details:")
	assert.Contains(t, html, "Build a site")
}

func TestRender_EscapesHTML(t *testing.T) {
	data := NewHireRequestData(nil, "Tom", "tom@x.com", "<script>alert(1)</script>", "")

	_, text, html, err := Render(HireRequest, data)
	require.NoError(t, err)
	assert.Contains(t, text, "<script>alert(1)</script>")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, data, "Type")
	assert.Equal(t, HireRequest, data["Type"])
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", map[string]any{})
	assert.Error(t, err)
	assert.False(t, Known("missing"))
	assert.True(t, Known(Welcome))
}
