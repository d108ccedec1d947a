package external

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppConfig controls the messaging hand-off link
type WhatsAppConfig struct {
	Host        string
	CountryCode string
}

// WhatsAppLink builds the deep link a guest opens to reach the host after a
// booking is persisted. The hand-off is deliberately not transactional with
// persistence: a link that is never opened leaves the booking intact.
type WhatsAppLink struct {
	cfg WhatsAppConfig
}

func NewWhatsAppLink(cfg WhatsAppConfig) *WhatsAppLink {
	if cfg.Host == "" {
		cfg.Host = "wa.me"
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "91"
	}
	return &WhatsAppLink{cfg: cfg}
}

// NormalizePhone strips every non-digit character and prefixes the country
// calling code only when exactly ten digits remain. Anything else is assumed
// to already carry a country code, or to be junk we pass through untouched.
func (w *WhatsAppLink) NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	normalized := digits.String()
	if len(normalized) == 10 {
		return w.cfg.CountryCode + normalized
	}
	return normalized
}

// ConfirmationURL renders the templated confirmation message into a chat
// deep link for the host's number.
func (w *WhatsAppLink) ConfirmationURL(hostPhone, guestName, title, date, timeLabel string) string {
	message := fmt.Sprintf(
		"Hi! This is %s. I just booked %s for %s at %s through Anubhav. Looking forward to it!",
		guestName, title, date, timeLabel)

	return fmt.Sprintf("https://%s/%s?text=%s",
		w.cfg.Host,
		w.NormalizePhone(hostPhone),
		url.QueryEscape(message))
}
