package sms

import (
	"fmt"
	"os"
	"strings"

	"rapidtransit/logger"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Config carries the Twilio credentials. Credentials are optional: an
// unconfigured service is a safe no-op so the rest of the system keeps
// working without the messaging integration present.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// LoadConfig reads the Twilio settings from the environment.
func LoadConfig() Config {
	return Config{
		AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		FromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
}

// Configured reports whether all credentials needed to send are present.
func (c Config) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// SMSService sends text messages through Twilio.
type SMSService struct {
	client *twilio.RestClient
	from   string
}

// NewSMSService creates a sender from the given config. With missing
// credentials the returned service has no client and Send reports failure
// without ever raising an error.
func NewSMSService(cfg Config) *SMSService {
	if !cfg.Configured() {
		return &SMSService{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &SMSService{
		client: client,
		from:   cfg.FromNumber,
	}
}

// Send delivers one message to the given phone number and reports success.
// Exactly one outbound attempt is made per call; provider errors are logged
// and swallowed. Callers must treat delivery as best-effort.
func (s *SMSService) Send(to, message string) bool {
	if s == nil || s.client == nil {
		logger.Warning("Twilio not configured - SMS notification skipped")
		return false
	}

	formattedPhone := NormalizePhone(to)

	params := &openapi.CreateMessageParams{}
	params.SetTo(formattedPhone)
	params.SetFrom(s.from)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		logger.Error("Error sending SMS", err)
		return false
	}

	logger.Success(fmt.Sprintf("SMS sent successfully to %s", formattedPhone))
	return true
}

// NormalizePhone formats a phone number for the South African numbering
// plan: strip everything but digits, keep an existing 27 country code,
// replace a leading trunk 0 with +27, otherwise prepend +27.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()

	switch {
	case strings.HasPrefix(cleaned, "27"):
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0"):
		return "+27" + cleaned[1:]
	default:
		return "+27" + cleaned
	}
}
