// backend/internal/infra/secret/secret_loader.go
package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	smpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// VersionName builds projects/<p>/secrets/<id>/versions/<v>.
// An id that is already a full resource name is returned as-is.
func VersionName(projectID, secretID, version string) string {
	id := strings.TrimSpace(secretID)
	if strings.HasPrefix(id, "projects/") {
		if strings.Contains(id, "/versions/") {
			return id
		}
		return id + "/versions/" + versionOrLatest(version)
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", strings.TrimSpace(projectID), id, versionOrLatest(version))
}

func versionOrLatest(v string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return "latest"
}

// Load reads one secret version from Secret Manager. When client is nil a
// short-lived client is opened with opts.
func Load(ctx context.Context, client *secretmanager.Client, projectID, secretID string, opts ...option.ClientOption) ([]byte, error) {
	if strings.TrimSpace(secretID) == "" {
		return nil, errors.New("secret: secretID is empty")
	}

	if client == nil {
		c, err := secretmanager.NewClient(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("secretmanager.NewClient: %w", err)
		}
		defer c.Close()
		client = c
	}

	name := VersionName(projectID, secretID, "")
	res, err := client.AccessSecretVersion(ctx, &smpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("access secret version %s: %w", name, err)
	}
	if res.GetPayload() == nil || len(res.GetPayload().GetData()) == 0 {
		return nil, fmt.Errorf("secret %s: empty payload", name)
	}
	return res.GetPayload().GetData(), nil
}

// LoadJWTSecret loads the HMAC signing key and trims surrounding whitespace.
func LoadJWTSecret(ctx context.Context, client *secretmanager.Client, projectID, secretID string, opts ...option.ClientOption) ([]byte, error) {
	raw, err := Load(ctx, client, projectID, secretID, opts...)
	if err != nil {
		return nil, err
	}
	key := []byte(strings.TrimSpace(string(raw)))
	if len(key) < 32 {
		return nil, fmt.Errorf("secret %s: jwt key too short (%d bytes, need >= 32)", secretID, len(key))
	}
	return key, nil
}
