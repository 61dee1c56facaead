package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/domain"
)

func TestTemplateRenderer_Invitation(t *testing.T) {
	r := NewTemplateRenderer()

	subject, html, text, err := r.Render("invitation", &domain.InvitationEmailData{
		Email:      "guest@example.com",
		Name:       "Ada",
		EventName:  "Summer Wedding",
		ConfirmURL: "https://app.example.com/invitations/abc123",
	})
	require.NoError(t, err)

	assert.Equal(t, "You're invited to Summer Wedding", subject)
	assert.Contains(t, html, "Summer Wedding")
	assert.Contains(t, html, "https://app.example.com/invitations/abc123")
	assert.Contains(t, text, "Hi Ada")
	assert.Contains(t, text, "https://app.example.com/invitations/abc123")
}

func TestTemplateRenderer_PasswordReset(t *testing.T) {
	r := NewTemplateRenderer()

	subject, html, text, err := r.Render("password_reset", &domain.PasswordResetEmailData{
		Email:            "user@example.com",
		FirstName:        "Grace",
		ResetURL:         "https://app.example.com/reset?token=xyz",
		ExpiresInMinutes: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, "Reset your password", subject)
	assert.Contains(t, html, "15 minutes")
	assert.Contains(t, text, "Hi Grace")
	assert.Contains(t, text, "https://app.example.com/reset?token=xyz")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()

	_, _, _, err := r.Render("no_such_template", nil)
	assert.Error(t, err)
}
