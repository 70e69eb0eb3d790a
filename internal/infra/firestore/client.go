// backend/internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// ClientWrapper pairs a Firestore client with the project it was opened for.
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient opens Firestore for projectID. opts usually carries
// option.WithCredentialsFile in local dev and is empty on Cloud Run (ADC).
func NewClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*ClientWrapper, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestoreinfra: projectID is empty")
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient (project=%s): %w", projectID, err)
	}

	log.Printf("[firestore] connected project=%s", projectID)
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
