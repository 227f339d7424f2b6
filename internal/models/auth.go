package models

import "time"

const (
	// DefaultDeviceCodeExpiry is used when the server sends no usable expiry
	DefaultDeviceCodeExpiry = 5 * time.Minute
	// DefaultPollInterval is used when the server sends no usable interval
	DefaultPollInterval = 5 * time.Second
)

// DeviceCode is the response to a device code request
type DeviceCode struct {
	DeviceCode      string
	UserCode        string
	VerificationURL string
	ExpiresIn       time.Duration
	Interval        time.Duration
}

// NewDeviceCode builds a device code, replacing non-positive durations with the defaults
func NewDeviceCode(deviceCode, userCode, verificationURL string, expiresIn, interval time.Duration) (DeviceCode, error) {
	const entity = "device code"
	if err := requireText(entity, "device_code", deviceCode); err != nil {
		return DeviceCode{}, err
	}
	if err := requireText(entity, "user_code", userCode); err != nil {
		return DeviceCode{}, err
	}
	if err := requireText(entity, "verification_url", verificationURL); err != nil {
		return DeviceCode{}, err
	}
	if expiresIn <= 0 {
		expiresIn = DefaultDeviceCodeExpiry
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return DeviceCode{
		DeviceCode:      deviceCode,
		UserCode:        userCode,
		VerificationURL: verificationURL,
		ExpiresIn:       expiresIn,
		Interval:        interval,
	}, nil
}

// DeviceToken is an OAuth access token
type DeviceToken struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    time.Duration `json:"-"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	Scope        string        `json:"scope,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewDeviceToken validates a token. A blank token type means bearer.
func NewDeviceToken(accessToken, tokenType string, expiresIn time.Duration, refreshToken, scope string, createdAt time.Time) (DeviceToken, error) {
	if err := requireText("device token", "access_token", accessToken); err != nil {
		return DeviceToken{}, err
	}
	if optionalText(tokenType) == "" {
		tokenType = "Bearer"
	}
	if expiresIn < 0 {
		expiresIn = 0
	}
	return DeviceToken{
		AccessToken:  accessToken,
		TokenType:    tokenType,
		ExpiresIn:    expiresIn,
		RefreshToken: optionalText(refreshToken),
		Scope:        optionalText(scope),
		CreatedAt:    createdAt,
	}, nil
}

// AuthorizationHeader returns the value of the Authorization header for this token
func (t DeviceToken) AuthorizationHeader() string {
	return t.TokenType + " " + t.AccessToken
}

// ExpiresAt returns the expiry instant, or the zero time when unknown
func (t DeviceToken) ExpiresAt() time.Time {
	if t.CreatedAt.IsZero() || t.ExpiresIn <= 0 {
		return time.Time{}
	}
	return t.CreatedAt.Add(t.ExpiresIn)
}

// DeviceTokenPollResult is the outcome of a single token poll: either a token or an error signal
type DeviceTokenPollResult struct {
	Token  *DeviceToken
	Signal string
}

// Authorized reports whether the poll returned a token
func (r DeviceTokenPollResult) Authorized() bool {
	return r.Token != nil
}
