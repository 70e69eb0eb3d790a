// backend/internal/platform/di/infra.go
package di

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "github.com/Lanor-Jephthah1/gurlhub/internal/infra/config"
	firestoreinfra "github.com/Lanor-Jephthah1/gurlhub/internal/infra/firestore"
	"github.com/Lanor-Jephthah1/gurlhub/internal/infra/secret"
)

// Infra owns the optional Google Cloud clients. Each one is opened only when
// the config asks for the feature that needs it.
type Infra struct {
	Config *appcfg.Config

	Firestore     *firestoreinfra.ClientWrapper
	GCS           *storage.Client
	SecretManager *secretmanager.Client
	FirebaseAuth  *firebaseauth.Client

	clientOpts []option.ClientOption
}

// NewInfra opens the clients cfg needs. Firestore (session backend) and GCS
// (product images) are strict; Firebase Auth is best-effort.
func NewInfra(ctx context.Context, cfg *appcfg.Config) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("di.infra: config is nil")
	}
	inf := &Infra{Config: cfg}

	if credFile := strings.TrimSpace(cfg.GCPCreds); credFile != "" {
		inf.clientOpts = append(inf.clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[di.infra] using credentials file for GCP clients: %s", redactPath(credFile))
	}

	if cfg.SessionBackend == "firestore" {
		fs, err := firestoreinfra.NewClient(ctx, cfg.ProjectID(), inf.clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("di.infra: %w", err)
		}
		inf.Firestore = fs
	}

	if strings.TrimSpace(cfg.ProductImageBucket) != "" {
		gcs, err := storage.NewClient(ctx, inf.clientOpts...)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("di.infra: storage.NewClient: %w", err)
		}
		inf.GCS = gcs
		log.Printf("[di.infra] GCS client initialized bucket=%s", cfg.ProductImageBucket)
	}

	if cfg.FirebaseAuthEnabled {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProject()}, inf.clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: firebase app init failed: %v (firebase sign-in disabled)", err)
		} else if authClient, err := app.Auth(ctx); err != nil {
			log.Printf("[di.infra] WARN: firebase auth init failed: %v (firebase sign-in disabled)", err)
		} else {
			inf.FirebaseAuth = authClient
			log.Printf("[di.infra] Firebase Auth initialized project=%s", cfg.FirebaseProject())
		}
	}

	return inf, nil
}

// JWTSecret resolves the signing key: JWT_SECRET, then Secret Manager
// (JWT_SECRET_NAME), then a random per-process key.
func (i *Infra) JWTSecret(ctx context.Context) ([]byte, error) {
	if s := strings.TrimSpace(i.Config.JWTSecret); s != "" {
		return []byte(s), nil
	}

	if name := strings.TrimSpace(i.Config.JWTSecretName); name != "" {
		if i.SecretManager == nil {
			sm, err := secretmanager.NewClient(ctx, i.clientOpts...)
			if err != nil {
				return nil, fmt.Errorf("di.infra: secretmanager.NewClient: %w", err)
			}
			i.SecretManager = sm
		}
		key, err := secret.LoadJWTSecret(ctx, i.SecretManager, i.Config.ProjectID(), name)
		if err != nil {
			return nil, fmt.Errorf("di.infra: load jwt secret: %w", err)
		}
		log.Printf("[di.infra] JWT secret loaded from Secret Manager (%s)", name)
		return key, nil
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	log.Printf("[di.infra] WARN: JWT_SECRET not set; using a random key (tokens will not survive a restart)")
	return key, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	return nil
}

func redactPath(p string) string {
	return "***/" + filepath.Base(p)
}
