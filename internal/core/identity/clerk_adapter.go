package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"foodie-api/internal/core/config"
	"foodie-api/internal/core/httpclient"
)

// ClerkAdapter implements the Provider interface using the Clerk API.
type ClerkAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the Clerk connection details.
	config config.ClerkConfig
}

// NewClerkAdapter creates a new instance of ClerkAdapter.
func NewClerkAdapter(cfg config.ClerkConfig) *ClerkAdapter {
	return &ClerkAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// clerkUser mirrors the subset of Clerk's user payload this system reads.
type clerkUser struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
	PhoneNumbers []struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"phone_numbers"`
}

// CurrentUser resolves a session token via the Clerk API.
func (a *ClerkAdapter) CurrentUser(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	url := fmt.Sprintf("%s/me?session_token=%s", a.config.APIURL, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+a.config.SecretKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound:
		return nil, ErrUnauthenticated
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("clerk API returned status: %d", resp.StatusCode)
	}

	var cu clerkUser
	if err := json.NewDecoder(resp.Body).Decode(&cu); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return mapToUser(cu)
}

// mapToUser converts the raw Clerk payload into the domain User.
func mapToUser(cu clerkUser) (*User, error) {
	if len(cu.EmailAddresses) == 0 {
		return nil, ErrUnauthenticated
	}

	user := &User{
		Email: cu.EmailAddresses[0].EmailAddress,
	}

	if cu.FirstName != "" || cu.LastName != "" {
		name := cu.FirstName
		if cu.LastName != "" {
			if name != "" {
				name += " "
			}
			name += cu.LastName
		}
		user.FullName = name
	}

	if len(cu.PhoneNumbers) > 0 {
		user.Phone = cu.PhoneNumbers[0].PhoneNumber
	}

	return user, nil
}
