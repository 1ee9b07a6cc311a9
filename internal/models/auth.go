package models

import "time"

// TokenRequest is the request body for a kitchen token
type TokenRequest struct {
	Passphrase string `json:"passphrase"`
}

// TokenResponse is returned after a successful passphrase check
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
