package trakt

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amaumene/traktmanager/internal/models"
	"github.com/tidwall/gjson"
)

const (
	signalAuthorizationPending = "authorization_pending"
	signalSlowDown             = "slow_down"
)

// GetToken retrieves the current token from the token store
func (c *Client) GetToken() (*models.DeviceToken, bool) {
	return c.tokenStore.GetToken()
}

func (c *Client) validateCredentials() error {
	if strings.TrimSpace(c.clientID) == "" || strings.TrimSpace(c.clientSecret) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// RequestDeviceCode starts the device authorization flow
func (c *Client) RequestDeviceCode(ctx context.Context) (models.DeviceCode, error) {
	if err := c.validateCredentials(); err != nil {
		return models.DeviceCode{}, err
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "oauth/device/code",
		body:   map[string]string{"client_id": c.clientID},
		name:   "oauth/device/code",
	})
	if err != nil {
		return models.DeviceCode{}, fmt.Errorf("failed to get device code: %w", err)
	}

	var dto deviceCodeDTO
	if err := json.Unmarshal(resp.Body, &dto); err != nil {
		return models.DeviceCode{}, fmt.Errorf("failed to decode device code: %w", err)
	}
	return models.NewDeviceCode(
		dto.DeviceCode,
		dto.UserCode,
		dto.VerificationURL,
		time.Duration(dto.ExpiresIn)*time.Second,
		time.Duration(dto.Interval)*time.Second,
	)
}

// PollDeviceToken polls the token endpoint once. A pending authorization is not
// an error: the result then carries the normalized error signal instead of a token.
func (c *Client) PollDeviceToken(ctx context.Context, deviceCode string) (models.DeviceTokenPollResult, error) {
	if strings.TrimSpace(deviceCode) == "" {
		return models.DeviceTokenPollResult{}, fmt.Errorf("device code is required")
	}
	if err := c.validateCredentials(); err != nil {
		return models.DeviceTokenPollResult{}, err
	}

	resp, err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "oauth/device/token",
		body: map[string]string{
			"code":          deviceCode,
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
		},
		name: "oauth/device/token",
	})
	if err != nil {
		return models.DeviceTokenPollResult{}, fmt.Errorf("failed to poll device token: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		signal := normalizeSignal(resp.StatusCode, resp.Body)
		c.metrics.PollOutcome(signal)
		return models.DeviceTokenPollResult{Signal: signal}, nil
	}

	token, err := c.decodeToken(resp.Body)
	if err != nil {
		return models.DeviceTokenPollResult{}, err
	}
	c.metrics.PollOutcome("authorized")
	return models.DeviceTokenPollResult{Token: &token}, nil
}

// RefreshToken exchanges the stored refresh token for a new token and stores it
func (c *Client) RefreshToken(ctx context.Context) (models.DeviceToken, error) {
	if err := c.validateCredentials(); err != nil {
		return models.DeviceToken{}, err
	}
	current, ok := c.tokenStore.GetToken()
	if !ok || current.RefreshToken == "" {
		return models.DeviceToken{}, fmt.Errorf("no refresh token available")
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "oauth/token",
		body: map[string]string{
			"refresh_token": current.RefreshToken,
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"redirect_uri":  "urn:ietf:wg:oauth:2.0:oob",
			"grant_type":    "refresh_token",
		},
		name: "oauth/token",
	})
	if err != nil {
		return models.DeviceToken{}, fmt.Errorf("failed to refresh token: %w", err)
	}

	token, err := c.decodeToken(resp.Body)
	if err != nil {
		return models.DeviceToken{}, err
	}
	c.tokenStore.SaveToken(token)
	c.logger.Info("Token refreshed successfully")
	return token, nil
}

func (c *Client) decodeToken(body []byte) (models.DeviceToken, error) {
	var dto deviceTokenDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return models.DeviceToken{}, fmt.Errorf("failed to decode token: %w", err)
	}
	createdAt := c.now().UTC()
	if dto.CreatedAt > 0 {
		createdAt = time.Unix(dto.CreatedAt, 0).UTC()
	}
	return models.NewDeviceToken(
		dto.AccessToken,
		dto.TokenType,
		time.Duration(dto.ExpiresIn)*time.Second,
		dto.RefreshToken,
		dto.Scope,
		createdAt,
	)
}

// normalizeSignal extracts the error code of a failed token poll. It prefers the
// "error" field of a JSON body, then the first non-blank line of a text body, then
// a code derived from the HTTP status.
func normalizeSignal(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	parsed := gjson.ParseBytes(trimmed)
	structured := gjson.ValidBytes(trimmed) && (parsed.IsObject() || parsed.IsArray())

	if structured {
		if field := parsed.Get("error"); field.Type == gjson.String && strings.TrimSpace(field.String()) != "" {
			return strings.TrimSpace(field.String())
		}
	} else if line := firstLine(trimmed); line != "" {
		return line
	}

	switch status {
	case http.StatusBadRequest:
		return signalAuthorizationPending
	case http.StatusTooManyRequests:
		return signalSlowDown
	default:
		return strconv.Itoa(status)
	}
}

// firstLine returns the first non-blank line with surrounding quotes removed
func firstLine(body []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.Trim(strings.TrimSpace(scanner.Text()), `"'`)
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
