package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/pkg/apperror"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Config carries messaging gateway settings.
type Config struct {
	BaseURL     string
	APIKey      string
	SendTimeout time.Duration
}

// HTTPOtpSender implements ports.OtpSender over the messaging gateway. SMS
// and WhatsApp go out as templated messages; TOTP needs no delivery at all.
type HTTPOtpSender struct {
	http *resty.Client
	log  zerolog.Logger
}

// NewHTTPOtpSender creates a sender backed by the messaging gateway.
func NewHTTPOtpSender(cfg Config, log zerolog.Logger) *HTTPOtpSender {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.SendTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", cfg.APIKey)
	return &HTTPOtpSender{http: client, log: log}
}

type sendRequest struct {
	Channel     string `json:"channel"`
	Destination string `json:"destination"`
	Template    string `json:"template"`
	Code        string `json:"code"`
	TTLSeconds  int    `json:"ttl_seconds"`
}

// Send dispatches the one-time code. TOTP sessions verify against the user's
// authenticator app, so there is nothing to deliver.
func (s *HTTPOtpSender) Send(ctx context.Context, channel domain.MfaChannel, destination string, code string) error {
	if channel == domain.ChannelTOTP {
		return nil
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(sendRequest{
			Channel:     string(channel),
			Destination: destination,
			Template:    "txn_otp",
			Code:        code,
			TTLSeconds:  60,
		}).
		Post("/v1/messages")
	if err != nil {
		s.log.Error().Err(err).Str("channel", string(channel)).Msg("otp dispatch failed")
		return apperror.ErrProviderFailure(fmt.Errorf("otp dispatch: %w", err))
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusAccepted {
		s.log.Error().
			Int("status", resp.StatusCode()).
			Str("channel", string(channel)).
			Str("body", string(resp.Body())).
			Msg("messaging gateway rejected otp dispatch")
		return apperror.ErrProviderFailure(fmt.Errorf("messaging gateway returned %d", resp.StatusCode()))
	}
	return nil
}
