package external

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	link := NewWhatsAppLink(WhatsAppConfig{CountryCode: "91"})

	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "919876543210"},
		{"98765 43210", "919876543210"},
		{"+91 98765-43210", "919876543210"},
		// Eleven digits: already carries something, pass through
		{"09876543210", "09876543210"},
		{"919876543210", "919876543210"},
		{"", ""},
		{"abc", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, link.NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestConfirmationURL(t *testing.T) {
	link := NewWhatsAppLink(WhatsAppConfig{Host: "wa.me", CountryCode: "91"})

	got := link.ConfirmationURL("98765 43210", "Asha", "Pottery Basics", "2026-09-05", "11 AM")

	assert.True(t, strings.HasPrefix(got, "https://wa.me/919876543210?text="), got)

	parsed, err := url.Parse(got)
	assert.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, "Asha")
	assert.Contains(t, text, "Pottery Basics")
	assert.Contains(t, text, "2026-09-05")
	assert.Contains(t, text, "11 AM")
}

func TestNewWhatsAppLinkDefaults(t *testing.T) {
	link := NewWhatsAppLink(WhatsAppConfig{})

	got := link.ConfirmationURL("9876543210", "Ravi", "Food Crawl", "2026-09-06", "7 PM")

	assert.Contains(t, got, "https://wa.me/919876543210")
}
