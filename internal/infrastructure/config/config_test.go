package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "portfolio-web", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "http://localhost:8080/api", cfg.Site.APIBaseURL)
		assert.Equal(t, "http://localhost:8080", cfg.Site.BackendURL)
		assert.Equal(t, "Portfolio Website", cfg.Site.AppName)
		assert.Equal(t, "https://wa.me/"+cfg.Site.WhatsAppNumber, cfg.Site.WhatsAppURL)
		assert.Equal(t, "memory", cfg.Session.Store)
		assert.Equal(t, 10*time.Second, cfg.API.Timeout)
		assert.Equal(t, 3, cfg.Display.AchievementsPerSlide)
		assert.Equal(t, 30*time.Second, cfg.Display.StreamHeartbeat)
		assert.Equal(t, 1000, cfg.Display.MaxStreams)
		assert.Equal(t, 1500*time.Millisecond, cfg.Admin.RedirectDelay)
	})

	t.Run("loads values from environment variables with PORTFOLIO prefix", func(t *testing.T) {
		t.Setenv("PORTFOLIO_SITE_API_BASE_URL", "https://api.example.com/api/")
		t.Setenv("PORTFOLIO_SITE_WHATSAPP_NUMBER", "628111")
		t.Setenv("PORTFOLIO_SESSION_STORE", "redis")
		t.Setenv("PORTFOLIO_API_TIMEOUT", "3s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.com/api", cfg.Site.APIBaseURL)
		assert.Equal(t, "https://wa.me/628111", cfg.Site.WhatsAppURL)
		assert.Equal(t, "redis", cfg.Session.Store)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	})

	t.Run("rejects relative api base url", func(t *testing.T) {
		t.Setenv("PORTFOLIO_SITE_API_BASE_URL", "/api")

		_, err := Load()
		assert.ErrorContains(t, err, "site.api_base_url")
	})

	t.Run("rejects unknown session store", func(t *testing.T) {
		t.Setenv("PORTFOLIO_SESSION_STORE", "cookie")

		_, err := Load()
		assert.ErrorContains(t, err, "session.store")
	})

	t.Run("production requires secure cookies", func(t *testing.T) {
		t.Setenv("PORTFOLIO_APP_ENV", "production")

		_, err := Load()
		assert.ErrorContains(t, err, "secure_cookie")

		t.Setenv("PORTFOLIO_SESSION_SECURE_COOKIE", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestEndpoints(t *testing.T) {
	e := NewEndpoints("http://localhost:8080/api/")

	assert.Equal(t, "http://localhost:8080/api/auth/login", e.Auth.Login)
	assert.Equal(t, "http://localhost:8080/api/auth/validate", e.Auth.Validate)
	assert.Equal(t, "http://localhost:8080/api/profiles/public", e.Profiles.Public)
	assert.Equal(t, "http://localhost:8080/api/projects/public/all", e.Projects.Public.All)
	assert.Equal(t, "http://localhost:8080/api/projects/public/current", e.Projects.Public.Current)
	assert.Equal(t, "http://localhost:8080/api/projects/public/finished", e.Projects.Public.Finished)
	assert.Equal(t, "http://localhost:8080/api/skills/categories", e.Skills.Categories)
	assert.Equal(t, "http://localhost:8080/api/achievements/featured", e.Achievements.Featured)
	assert.Equal(t, "http://localhost:8080/api/contacts/submit", e.Contacts.Submit)
	assert.Equal(t, "http://localhost:8080/api/upload/cv", e.Upload.CV)
}

func TestItem(t *testing.T) {
	assert.Equal(t, "http://x/api/projects/42", Item("http://x/api/projects", "42"))
	assert.Equal(t, "http://x/api/skills/category/Web%20Dev", Item("http://x/api/skills/category", "Web Dev"))
}
