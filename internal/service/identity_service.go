package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var ErrIdentityTokenRejected = errors.New("identity token rejected")

// IdentityProfile is what the identity provider vouches for.
type IdentityProfile struct {
	Email   string
	Name    string
	Picture string
}

// IdentityService verifies third-party login tokens and downloads the
// provider's avatar. Calls are never retried.
type IdentityService interface {
	Verify(ctx context.Context, idToken string) (*IdentityProfile, error)
	FetchAvatar(ctx context.Context, url string) ([]byte, error)
}

type tokenInfo struct {
	Email         string       `json:"email"`
	EmailVerified flexibleBool `json:"email_verified"`
	Audience      string       `json:"aud"`
	Name          string       `json:"name"`
	Picture       string       `json:"picture"`
}

// flexibleBool accepts both true and "true", the tokeninfo endpoint sends strings.
type flexibleBool bool

func (b *flexibleBool) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*b = false
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*b = flexibleBool(parsed)
	return nil
}

type identityService struct {
	log          *logrus.Logger
	httpClient   *resty.Client
	tokenInfoURL string
	clientID     string
}

func NewIdentityService(log *logrus.Logger, tokenInfoURL, clientID string) IdentityService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &identityService{
		log:          log,
		httpClient:   client,
		tokenInfoURL: tokenInfoURL,
		clientID:     clientID,
	}
}

func (s *identityService) Verify(ctx context.Context, idToken string) (*IdentityProfile, error) {
	var info tokenInfo
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParam("id_token", idToken).
		SetResult(&info).
		Get(s.tokenInfoURL)
	if err != nil {
		s.log.Warnf("Failed to call identity provider: %+v", err)
		return nil, fmt.Errorf("failed to call identity provider: %w", err)
	}

	if resp.IsError() {
		s.log.WithField("status_code", resp.StatusCode()).Info("Identity provider rejected token")
		return nil, ErrIdentityTokenRejected
	}

	if s.clientID != "" && info.Audience != s.clientID {
		return nil, ErrIdentityTokenRejected
	}
	if info.Email == "" || !bool(info.EmailVerified) {
		return nil, ErrIdentityTokenRejected
	}

	return &IdentityProfile{
		Email:   strings.ToLower(info.Email),
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

func (s *identityService) FetchAvatar(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "image/*").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download avatar: status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
