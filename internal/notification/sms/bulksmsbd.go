package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const serviceName = "bulksmsbd"

// Response codes BulkSMSBD uses for accepted messages.
var successCodes = map[string]bool{"1000": true, "1002": true, "1003": true, "1004": true}

type Config struct {
	BaseURL  string
	APIKey   string
	SenderID string
	Timeout  time.Duration
}

type BulkSMSClient struct {
	cfg    Config
	http   *http.Client
	logger logger.ZapLogger
}

func NewBulkSMSClient(cfg Config, log logger.ZapLogger) *BulkSMSClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &BulkSMSClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: log,
	}
}

type apiResponse struct {
	ResponseCode json.RawMessage `json:"response_code"`
	SuccessMsg   string          `json:"success_message"`
	ErrorMsg     string          `json:"error_message"`
}

func (c *BulkSMSClient) Send(ctx context.Context, phone, message string) error {
	if c.cfg.APIKey == "" || c.cfg.SenderID == "" {
		return apperror.External(serviceName, errors.New("sms provider is not configured"))
	}
	if strings.TrimSpace(phone) == "" {
		return apperror.Validation("phone number is required")
	}

	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("type", "text")
	params.Set("number", phone)
	params.Set("senderid", c.cfg.SenderID)
	params.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return apperror.External(serviceName, err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return apperror.External(serviceName, err)
	}
	defer res.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return apperror.External(serviceName, errors.Wrapf(err, "decode response (status %d)", res.StatusCode))
	}

	code := strings.Trim(string(out.ResponseCode), `"`)
	if !successCodes[code] {
		msg := out.ErrorMsg
		if msg == "" {
			msg = "failed to send sms"
		}
		c.logger.Error("BulkSMSBD rejected message", zap.String("response_code", code), zap.String("error", msg))
		return apperror.External(serviceName, errors.Errorf("%s (code %s)", msg, code))
	}
	return nil
}

// LogSender writes messages to the log instead of sending them. Used in
// development when no SMS credentials are configured.
type LogSender struct {
	logger logger.ZapLogger
}

func NewLogSender(log logger.ZapLogger) *LogSender {
	return &LogSender{logger: log}
}

func (s *LogSender) Send(_ context.Context, phone, message string) error {
	s.logger.Info("sms (not sent)", zap.String("phone", phone), zap.String("message", message))
	return nil
}
