// Package notifier delivers one-time codes to users over SMS or email.
//
// Delivery never fails from the caller's perspective: when a provider is not
// configured, or when real delivery errors out, the message is emitted to the
// operator console instead and the caller proceeds as if it was sent.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Poojabhadane4112/MumbaiHacks/internal/config"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/mailer"
	"github.com/Poojabhadane4112/MumbaiHacks/internal/model"
)

// Dispatcher sends one-time codes over the configured channels. Construct it
// once at process start; it holds no mutable state.
type Dispatcher struct {
	sms        config.SMSConfig
	mailer     *mailer.Mailer
	httpClient *http.Client
	logger     *zerolog.Logger
}

// NewDispatcher creates a new Dispatcher. The mailer may be nil when SMTP is
// not configured.
func NewDispatcher(sms config.SMSConfig, m *mailer.Mailer, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sms:        sms,
		mailer:     m,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// SendCode delivers a one-time code to the given channel endpoint (a mobile
// number or email address). It never reports failure to the caller.
func (d *Dispatcher) SendCode(ctx context.Context, channel model.Channel, endpoint, code string) {
	message := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)

	switch channel {
	case model.ChannelSMS:
		if d.sms.GatewayURL == "" {
			d.logToConsole(channel, endpoint, message)
			return
		}
		if err := d.sendSMS(ctx, endpoint, message); err != nil {
			d.logger.Warn().Err(err).Str("mobile", endpoint).Msg("sms delivery failed, falling back to console")
			d.logToConsole(channel, endpoint, message)
		}
	case model.ChannelEmail:
		if d.mailer == nil {
			d.logToConsole(channel, endpoint, message)
			return
		}
		if err := d.mailer.SendSimple([]string{endpoint}, "Your verification code", message); err != nil {
			d.logger.Warn().Err(err).Str("email", endpoint).Msg("email delivery failed, falling back to console")
			d.logToConsole(channel, endpoint, message)
		}
	default:
		d.logToConsole(channel, endpoint, message)
	}
}

type smsRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	SenderID string `json:"sender_id"`
}

func (d *Dispatcher) sendSMS(ctx context.Context, mobile, message string) error {
	body, err := json.Marshal(smsRequest{
		To:       mobile,
		Message:  message,
		SenderID: d.sms.SenderID,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.sms.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if d.sms.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.sms.APIKey)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}

func (d *Dispatcher) logToConsole(channel model.Channel, endpoint, message string) {
	d.logger.Info().
		Str("channel", string(channel)).
		Str("endpoint", endpoint).
		Msg(message)
}
