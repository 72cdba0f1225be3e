package auth

import (
	"fmt"

	"golang.org/x/oauth2"

	"fitcoach/internal/config"
	"fitcoach/internal/store"
)

const (
	// Strava OAuth endpoints
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// Session import only needs to list activities. Strava takes a single
// comma-separated scope string.
var Scopes = []string{"read,activity:read_all"}

// NewOAuthConfig builds the oauth2 config for the configured Strava app.
func NewOAuthConfig(cfg config.StravaConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   AuthURL,
			TokenURL:  TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: fmt.Sprintf("http://localhost:%d/callback", CallbackPort),
		Scopes:      Scopes,
	}
}

// Result is a completed authorization.
type Result struct {
	Token     *oauth2.Token
	AthleteID int64
}

// Record converts the result into the row the store keeps.
func (r *Result) Record() *store.Auth {
	return &store.Auth{
		AthleteID:    r.AthleteID,
		AccessToken:  r.Token.AccessToken,
		RefreshToken: r.Token.RefreshToken,
		ExpiresAt:    r.Token.Expiry,
	}
}

// TokenFromAuth rebuilds an oauth2 token from stored credentials.
func TokenFromAuth(a *store.Auth) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       a.ExpiresAt,
	}
}

// ExtractAthleteID reads the athlete id Strava embeds in the token
// response. Zero when absent.
func ExtractAthleteID(token *oauth2.Token) int64 {
	athlete, ok := token.Extra("athlete").(map[string]any)
	if !ok {
		return 0
	}
	if id, ok := athlete["id"].(float64); ok {
		return int64(id)
	}
	return 0
}
