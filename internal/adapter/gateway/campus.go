package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sicknote-hub/internal/domain"
)

// CampusGateway talks to the campus illness-reporting backend over JSON
// REST. Implements domain.CredentialExchanger and domain.PrivacyFetcher.
type CampusGateway struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ domain.CredentialExchanger = (*CampusGateway)(nil)
	_ domain.PrivacyFetcher      = (*CampusGateway)(nil)
)

// NewCampusGateway creates a gateway with tuned HTTP transport.
func NewCampusGateway(baseURL string, timeout time.Duration) *CampusGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &CampusGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// loginResponse is the backend's success shape for /auth/login. Role is
// an open string on the wire and is validated into the closed enum at
// this boundary.
type loginResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// Login exchanges an email/password pair for an Identity. It has no
// side effect on the session store; the caller decides whether to
// commit. A response missing the token, carrying an unknown role, or
// lacking a user id is a malformed response, never a partial Identity.
func (g *CampusGateway) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := g.postJSON(ctx, "/auth/login", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, loginError(resp)
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode login response: %w", domain.ErrMalformedResponse, err)
	}

	role, err := domain.ParseRole(payload.Role)
	if err != nil {
		return nil, err
	}
	if payload.Token == "" {
		return nil, fmt.Errorf("%w: login response missing token", domain.ErrMalformedResponse)
	}
	if payload.ID <= 0 {
		return nil, fmt.Errorf("%w: login response missing user id", domain.ErrMalformedResponse)
	}

	return &domain.Identity{
		Token:  payload.Token,
		Role:   role,
		UserID: payload.ID,
	}, nil
}

// Register creates a new account. Callers compose it with Login to
// obtain an Identity; registration alone never yields a session.
func (g *CampusGateway) Register(ctx context.Context, reg domain.Registration) error {
	body := map[string]string{
		"email":     reg.Email,
		"password":  reg.Password,
		"full_name": reg.FullName,
		"role":      string(reg.Role),
	}

	resp, err := g.postJSON(ctx, "/auth/register", "", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return loginError(resp)
	}
	return nil
}

// privacyPayload is the settings endpoint's body and response shape.
type privacyPayload struct {
	NotificationPrivacy string `json:"notification_privacy"`
}

// FetchPrivacy retrieves the acting student's notification privacy
// preference.
func (g *CampusGateway) FetchPrivacy(ctx context.Context, token string) (domain.PrivacyPreference, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/settings/privacy", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: settings endpoint returned status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}

	var payload privacyPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode privacy response: %w", domain.ErrMalformedResponse, err)
	}
	return domain.ParsePrivacyPreference(payload.NotificationPrivacy)
}

// updatePrivacy pushes a changed preference with the caller's token.
func (g *CampusGateway) updatePrivacy(ctx context.Context, token string, value domain.PrivacyPreference) error {
	resp, err := g.postJSON(ctx, "/api/settings/privacy", token, privacyPayload{NotificationPrivacy: string(value)})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: settings endpoint returned status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}

// notifyFriends issues the notify action for the selected friends.
func (g *CampusGateway) notifyFriends(ctx context.Context, token string, friendIDs []int64) error {
	body := map[string][]int64{"friend_ids": friendIDs}

	resp, err := g.postJSON(ctx, "/notify", token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: notify endpoint returned status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}

// postJSON issues a POST with a JSON body, attaching the bearer token
// when one is supplied.
func (g *CampusGateway) postJSON(ctx context.Context, path, token string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", domain.ErrBackendUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	return resp, nil
}

// errorDetail is the backend's non-2xx shape: detail is either a string
// or a list of {msg} objects; the first message is surfaced verbatim.
type errorDetail struct {
	Detail json.RawMessage `json:"detail"`
}

func loginError(resp *http.Response) error {
	base := domain.ErrInvalidCredentials
	if resp.StatusCode >= 500 {
		base = domain.ErrBackendUnavailable
	}

	msg := serverMessage(resp.Body)
	if msg == "" {
		return fmt.Errorf("%w: status %d", base, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s", base, msg)
}

// serverMessage extracts the user-facing message from an error body.
// Returns "" when no message can be recovered; the caller falls back to
// a generic one.
func serverMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return ""
	}

	var detail errorDetail
	if err := json.Unmarshal(data, &detail); err != nil || len(detail.Detail) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(detail.Detail, &asString); err == nil {
		return asString
	}

	var asList []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(detail.Detail, &asList); err == nil && len(asList) > 0 {
		return asList[0].Msg
	}
	return ""
}
