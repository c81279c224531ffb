package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/config"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
)

func TestSendCode_SMSGateway(t *testing.T) {
	var got smsRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	logger := zerolog.Nop()
	d := NewDispatcher(config.SMSConfig{
		GatewayURL: srv.URL,
		APIKey:     "api-key",
		SenderID:   "ONBOARD",
	}, nil, &logger)

	d.SendCode(context.Background(), model.ChannelSMS, "+15551234567", "123456")

	assert.Equal(t, "Bearer api-key", auth)
	assert.Equal(t, "+15551234567", got.To)
	assert.Equal(t, "ONBOARD", got.SenderID)
	assert.Contains(t, got.Message, "123456")
}

func TestSendCode_GatewayErrorFallsBackToConsole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	d := NewDispatcher(config.SMSConfig{GatewayURL: srv.URL}, nil, &logger)

	// Must not panic or surface the provider failure.
	d.SendCode(context.Background(), model.ChannelSMS, "+15551234567", "123456")

	assert.Contains(t, buf.String(), "123456")
	assert.Contains(t, buf.String(), "+15551234567")
}

func TestSendCode_UnconfiguredChannelsLogToConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	// No gateway, no mailer.
	d := NewDispatcher(config.SMSConfig{}, nil, &logger)

	d.SendCode(context.Background(), model.ChannelSMS, "+15551234567", "111111")
	d.SendCode(context.Background(), model.ChannelEmail, "asha@example.com", "222222")
	d.SendCode(context.Background(), model.ChannelCustom, "somewhere", "333333")

	out := buf.String()
	assert.Contains(t, out, "111111")
	assert.Contains(t, out, "222222")
	assert.Contains(t, out, "333333")
}
