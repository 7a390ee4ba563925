package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAIL_FROM", "")
	t.Setenv("SMTP_USERNAME", "relay@example.com")
	t.Setenv("MAIL_ADMIN_ADDRESS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, MailDriverSMTP, cfg.Mail.Driver)
	assert.Equal(t, "relay@example.com", cfg.Mail.From)
	assert.Equal(t, "relay@example.com", cfg.Mail.AdminAddress)
	assert.Equal(t, 10*time.Minute, cfg.Sizes.CacheTTL)
	assert.False(t, cfg.Notify.Async)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://forms.example.com/")
	t.Setenv("MAIL_DRIVER", "SendGrid")
	t.Setenv("MAIL_FROM", "noreply@example.com")
	t.Setenv("MAIL_ADMIN_ADDRESS", "sales@example.com")
	t.Setenv("NOTIFY_RETRY_DELAY", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://forms.example.com", cfg.PublicBaseURL)
	assert.Equal(t, "https://forms.example.com/form/abc", cfg.FormURL("abc"))
	assert.Equal(t, MailDriverSendGrid, cfg.Mail.Driver)
	assert.Equal(t, "sales@example.com", cfg.Mail.AdminAddress)
	assert.Equal(t, 5*time.Second, cfg.Notify.RetryDelay)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}
