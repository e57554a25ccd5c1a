package imagehost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const serviceName = "imgbb"

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, image []byte) (string, error)
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type ImgBBClient struct {
	cfg    Config
	http   *http.Client
	logger logger.ZapLogger
}

func NewImgBBClient(cfg Config, log logger.ZapLogger) *ImgBBClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &ImgBBClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: log,
	}
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ImgBBClient) Upload(ctx context.Context, image []byte) (string, error) {
	if c.cfg.APIKey == "" {
		return "", apperror.External(serviceName, errors.New("image host is not configured"))
	}
	if len(image) == 0 {
		return "", apperror.Validation("image data is required")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("image", base64.StdEncoding.EncodeToString(image)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	endpoint := c.cfg.BaseURL + "?key=" + url.QueryEscape(c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", apperror.External(serviceName, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return "", apperror.External(serviceName, err)
	}
	defer res.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", apperror.External(serviceName, errors.Wrapf(err, "decode response (status %d)", res.StatusCode))
	}
	if !out.Success || out.Data.URL == "" {
		msg := strings.TrimSpace(out.Error.Message)
		if msg == "" {
			msg = "failed to upload image"
		}
		c.logger.Error("ImgBB rejected upload", zap.Int("status", res.StatusCode), zap.String("error", msg))
		return "", apperror.External(serviceName, errors.New(msg))
	}

	c.logger.Info("image uploaded", zap.String("url", out.Data.URL))
	return out.Data.URL, nil
}
