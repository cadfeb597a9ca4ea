// internal/platform/secrets/provider.go
package secrets

import (
	"context"
	"errors"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

var errProviderNotConfigured = errors.New("secrets: provider not configured")

// Provider resolves credentials env-first, then from Secret Manager.
// A nil Provider (no GCP project) resolves env values only.
type Provider struct {
	sm        *secretmanager.Client
	projectID string
}

// NewProvider opens a Secret Manager client for projectID. An empty
// projectID returns nil: callers keep working with env values alone.
func NewProvider(ctx context.Context, projectID string) (*Provider, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, nil
	}
	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("[secrets] Secret Manager enabled project=%s", projectID)
	return &Provider{sm: sm, projectID: projectID}, nil
}

// Resolve returns envValue when set, otherwise the latest version of
// secretID. A missing secret on a nil provider is just an empty string; the
// adapters fail fast with their own missing-credentials errors.
func (p *Provider) Resolve(ctx context.Context, envValue, secretID string) string {
	if v := strings.TrimSpace(envValue); v != "" {
		return v
	}
	if p == nil || p.sm == nil {
		return ""
	}

	v, err := p.access(ctx, secretID)
	if err != nil {
		log.Printf("[secrets] WARN resolve %s failed: %v", secretID, err)
		return ""
	}
	return v
}

func (p *Provider) access(ctx context.Context, secretID string) (string, error) {
	if p == nil || p.sm == nil {
		return "", errProviderNotConfigured
	}
	secretID = strings.TrimSpace(secretID)
	if secretID == "" {
		return "", errors.New("secrets: secretID is empty")
	}

	name := "projects/" + p.projectID + "/secrets/" + secretID + "/versions/latest"
	resp, err := p.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("secrets: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("secrets: empty payload (" + name + ")")
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

// Close releases the underlying client.
func (p *Provider) Close() error {
	if p == nil || p.sm == nil {
		return nil
	}
	return p.sm.Close()
}
