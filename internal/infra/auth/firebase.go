// backend/internal/infra/auth/firebase.go
package auth

import (
	"context"
	"errors"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// FirebaseVerifier checks Firebase ID tokens and exposes the verified email.
type FirebaseVerifier struct {
	Client *firebaseauth.Client
}

func NewFirebaseVerifier(client *firebaseauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{Client: client}
}

// VerifyEmail verifies idToken and returns its email claim.
func (v *FirebaseVerifier) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	if v == nil || v.Client == nil {
		return "", errors.New("auth: firebase client is nil")
	}
	tok, err := v.Client.VerifyIDToken(ctx, strings.TrimSpace(idToken))
	if err != nil {
		return "", err
	}
	email, _ := tok.Claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("auth: firebase token has no email claim")
	}
	return email, nil
}
