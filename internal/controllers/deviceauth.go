package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amaumene/traktmanager/internal/models"
	"github.com/amaumene/traktmanager/internal/services/trakt"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// slowDownStep is added to the poll interval every time the server asks to slow down
const slowDownStep = 5 * time.Second

var (
	ErrAccessDenied         = errors.New("authorization was denied by the user")
	ErrDeviceCodeExpired    = errors.New("device code expired before authorization completed")
	ErrInvalidCredentials   = errors.New("trakt rejected the authorization request")
	ErrUnexpectedAuthSignal = errors.New("unexpected device authorization error")
)

// AuthState is a state of the device authorization flow
type AuthState int

const (
	StateRequesting AuthState = iota
	StatePolling
	StateAuthorized
	StateDenied
	StateExpired
	StateFailed
)

func (s AuthState) String() string {
	switch s {
	case StateRequesting:
		return "requesting"
	case StatePolling:
		return "polling"
	case StateAuthorized:
		return "authorized"
	case StateDenied:
		return "denied"
	case StateExpired:
		return "expired"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("AuthState(%d)", int(s))
	}
}

// Terminal reports whether no further transition can happen from s
func (s AuthState) Terminal() bool {
	return s >= StateAuthorized
}

//go:generate mockgen -source=deviceauth.go -destination=mock_deviceauth_test.go -package=controllers

// DeviceAuthClient is the transport used by the device flow
type DeviceAuthClient interface {
	RequestDeviceCode(ctx context.Context) (models.DeviceCode, error)
	PollDeviceToken(ctx context.Context, deviceCode string) (models.DeviceTokenPollResult, error)
}

// DeviceAuthController runs the OAuth device authorization flow
type DeviceAuthController struct {
	client DeviceAuthClient
	tokens trakt.TokenStore
	logger *logrus.Logger
	tracer trace.Tracer
	sleep  func(ctx context.Context, d time.Duration) error
	now    func() time.Time
}

// NewDeviceAuthController creates a new device authorization controller
func NewDeviceAuthController(client DeviceAuthClient, tokens trakt.TokenStore, logger *logrus.Logger, tracer trace.Tracer) *DeviceAuthController {
	return &DeviceAuthController{
		client: client,
		tokens: tokens,
		logger: logger,
		tracer: tracer,
		sleep:  sleepContext,
		now:    time.Now,
	}
}

// RequestCode asks the server for a new device code
func (c *DeviceAuthController) RequestCode(ctx context.Context) (models.DeviceCode, error) {
	code, err := c.client.RequestDeviceCode(ctx)
	if err != nil {
		return models.DeviceCode{}, fmt.Errorf("failed to request device code: %w", err)
	}
	if code.ExpiresIn <= 0 {
		code.ExpiresIn = models.DefaultDeviceCodeExpiry
	}
	if code.Interval <= 0 {
		code.Interval = models.DefaultPollInterval
	}
	return code, nil
}

// Authorize requests a code, hands it to prompt so the user can approve it, then waits for the token
func (c *DeviceAuthController) Authorize(ctx context.Context, prompt func(models.DeviceCode)) (models.DeviceToken, error) {
	code, err := c.RequestCode(ctx)
	if err != nil {
		return models.DeviceToken{}, err
	}
	prompt(code)
	return c.WaitForAuthorization(ctx, code)
}

// WaitForAuthorization polls the token endpoint until the user approves or
// declines the code, or the code expires. Every poll is preceded by exactly one
// sleep of the current interval. The token is stored only on success.
func (c *DeviceAuthController) WaitForAuthorization(ctx context.Context, code models.DeviceCode) (models.DeviceToken, error) {
	ctx, span := c.tracer.Start(ctx, "device-authorization")
	defer span.End()

	expiry := code.ExpiresIn
	if expiry <= 0 {
		expiry = models.DefaultDeviceCodeExpiry
	}
	interval := code.Interval
	if interval <= 0 {
		interval = models.DefaultPollInterval
	}
	deadline := c.now().Add(expiry)

	state := StatePolling
	polls := 0
	log := c.logger.WithField("user_code", code.UserCode)
	defer func() {
		span.SetAttributes(attribute.String("auth.state", state.String()), attribute.Int("auth.polls", polls))
	}()

	for {
		if err := ctx.Err(); err != nil {
			return models.DeviceToken{}, err
		}
		if !c.now().Before(deadline) {
			state = StateExpired
			span.SetStatus(codes.Error, state.String())
			return models.DeviceToken{}, ErrDeviceCodeExpired
		}

		if err := c.sleep(ctx, interval); err != nil {
			return models.DeviceToken{}, err
		}
		if err := ctx.Err(); err != nil {
			return models.DeviceToken{}, err
		}

		polls++
		result, err := c.client.PollDeviceToken(ctx, code.DeviceCode)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return models.DeviceToken{}, ctxErr
			}
			state = StateFailed
			span.RecordError(err)
			span.SetStatus(codes.Error, state.String())
			return models.DeviceToken{}, fmt.Errorf("failed to poll for device token: %w", err)
		}

		next, nextInterval, err := nextPollState(result, interval)
		state = next
		switch next {
		case StateAuthorized:
			c.tokens.SaveToken(*result.Token)
			log.WithField("polls", polls).Info("Device authorized")
			return *result.Token, nil
		case StatePolling:
			if nextInterval != interval {
				log.WithField("interval", nextInterval).Debug("Server asked to slow down")
			} else {
				log.Debug("Waiting for user authorization...")
			}
			interval = nextInterval
		default:
			span.SetStatus(codes.Error, next.String())
			return models.DeviceToken{}, err
		}
	}
}

// nextPollState maps the outcome of one poll to the next state and interval.
// err is set for terminal failure states.
func nextPollState(result models.DeviceTokenPollResult, interval time.Duration) (AuthState, time.Duration, error) {
	if result.Authorized() {
		return StateAuthorized, interval, nil
	}

	switch result.Signal {
	case "", "authorization_pending":
		return StatePolling, interval, nil
	case "slow_down":
		return StatePolling, interval + slowDownStep, nil
	case "access_denied":
		return StateDenied, interval, ErrAccessDenied
	case "expired_token":
		return StateExpired, interval, ErrDeviceCodeExpired
	case "invalid_client":
		return StateFailed, interval, fmt.Errorf("%w: the client id or secret is invalid", ErrInvalidCredentials)
	case "invalid_grant":
		return StateFailed, interval, fmt.Errorf("%w: the device code is invalid or was already used", ErrInvalidCredentials)
	default:
		return StateFailed, interval, fmt.Errorf("%w: %s", ErrUnexpectedAuthSignal, result.Signal)
	}
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
