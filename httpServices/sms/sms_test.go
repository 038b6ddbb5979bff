package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhoneLocalFormat(t *testing.T) {
	assert.Equal(t, "+27821234567", NormalizePhone("0821234567"))
}

func TestNormalizePhoneCountryCode(t *testing.T) {
	assert.Equal(t, "+27821234567", NormalizePhone("27821234567"))
	assert.Equal(t, "+27821234567", NormalizePhone("+27821234567"))
}

func TestNormalizePhoneBareSubscriberNumber(t *testing.T) {
	assert.Equal(t, "+27821234567", NormalizePhone("821234567"))
}

func TestNormalizePhoneStripsFormatting(t *testing.T) {
	assert.Equal(t, "+27821234567", NormalizePhone("082 123-4567"))
	assert.Equal(t, "+27821234567", NormalizePhone("(082) 123 4567"))
}

func TestConfigConfigured(t *testing.T) {
	assert.False(t, Config{}.Configured())
	assert.False(t, Config{AccountSID: "AC123", AuthToken: "secret"}.Configured())
	assert.True(t, Config{AccountSID: "AC123", AuthToken: "secret", FromNumber: "+27600000000"}.Configured())
}

func TestSendWithoutConfiguration(t *testing.T) {
	service := NewSMSService(Config{})
	assert.False(t, service.Send("+27821234567", "test message"))
}

func TestSendOnNilService(t *testing.T) {
	var service *SMSService
	assert.False(t, service.Send("+27821234567", "test message"))
}
