// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"fmt"
	"net/http"

	ory "github.com/ory/client-go"

	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/internal/types"
)

var _ ClientInterface = (*Client)(nil)

// Client talks to kratos. The public API resolves browser session cookies,
// the admin API manages identities.
type Client struct {
	public *ory.APIClient
	admin  *ory.APIClient

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(publicURL, adminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	publicConf := ory.NewConfiguration()
	publicConf.Servers = ory.ServerConfigurations{{URL: publicURL}}

	adminConf := ory.NewConfiguration()
	adminConf.Servers = ory.ServerConfigurations{{URL: adminURL}}

	return &Client{
		public:  ory.NewAPIClient(publicConf),
		admin:   ory.NewAPIClient(adminConf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// ResolveSession exchanges the request's cookie header for the identity it
// belongs to. An absent or invalid session yields (nil, nil); the caller
// decides whether anonymity is acceptable.
func (c *Client) ResolveSession(ctx context.Context, cookieHeader string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "identity.Client.ResolveSession")
	defer span.End()

	if cookieHeader == "" {
		return nil, nil
	}

	session, r, err := c.public.FrontendAPI.ToSession(ctx).Cookie(cookieHeader).Execute()
	if err != nil {
		if r != nil && (r.StatusCode == http.StatusUnauthorized || r.StatusCode == http.StatusForbidden) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	if session.Identity == nil || !session.GetActive() {
		return nil, nil
	}

	return userFromIdentity(session.Identity), nil
}

func (c *Client) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "identity.Client.GetIdentityIDByEmail")
	defer span.End()

	// NOTE: empty page token works around https://github.com/ory/sdk/issues/461
	ids, r, err := c.admin.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to list identities: %w", err)
	}

	if len(ids) == 0 {
		return "", nil
	}

	return ids[0].Id, nil
}

func (c *Client) CreateIdentity(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "identity.Client.CreateIdentity")
	defer span.End()

	body := ory.CreateIdentityBody{
		SchemaId: "default",
		Traits: map[string]interface{}{
			"email": email,
		},
	}

	identity, _, err := c.admin.IdentityAPI.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	return identity.Id, nil
}

func (c *Client) GetIdentity(ctx context.Context, id string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "identity.Client.GetIdentity")
	defer span.End()

	identity, r, err := c.admin.IdentityAPI.GetIdentity(ctx, id).Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("identity %s not found", id)
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return userFromIdentity(identity), nil
}

// CreateRecoveryLink returns the one-time link and code a provisioned user
// follows to set credentials.
func (c *Client) CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error) {
	ctx, span := c.tracer.Start(ctx, "identity.Client.CreateRecoveryLink")
	defer span.End()

	body := ory.CreateRecoveryCodeForIdentityBody{
		IdentityId: identityID,
	}
	if expiresIn != "" {
		body.ExpiresIn = &expiresIn
	}

	code, _, err := c.admin.IdentityAPI.CreateRecoveryCodeForIdentity(ctx).
		CreateRecoveryCodeForIdentityBody(body).
		Execute()
	if err != nil {
		return "", "", fmt.Errorf("failed to create recovery code: %w", err)
	}

	return code.RecoveryLink, code.RecoveryCode, nil
}

func userFromIdentity(identity *ory.Identity) *types.User {
	u := &types.User{ID: identity.Id}

	traits, ok := identity.Traits.(map[string]interface{})
	if !ok {
		return u
	}

	if email, ok := traits["email"].(string); ok {
		u.Email = email
	}
	if name, ok := traits["name"].(string); ok {
		u.Name = name
	}

	return u
}
