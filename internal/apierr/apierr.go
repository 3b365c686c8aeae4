// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package apierr holds the error taxonomy shared by the forecast and geocoding providers.
package apierr

import (
	"errors"
	"fmt"
	"strings"
)

// placeholderPrefix marks keys that were copied from a sample configuration but never filled in
const placeholderPrefix = "YOUR_"

var (
	// ErrMissingAPIKey is returned before any network call when a provider key is absent or a placeholder
	ErrMissingAPIKey = errors.New("API key is missing")

	// ErrDataShape is returned when a successful response lacks fields the normalization needs
	ErrDataShape = errors.New("unexpected response data shape")

	// ErrNetwork wraps transport level failures (DNS, timeouts, connection resets)
	ErrNetwork = errors.New("network failure")
)

// ProviderError is a non-success HTTP status or an error payload returned by a provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Code       int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Provider)
	sb.WriteString(" request failed")
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " with status %d", e.StatusCode)
	}
	if e.Code != 0 {
		fmt.Fprintf(&sb, " (code %d)", e.Code)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// CheckAPIKey returns ErrMissingAPIKey for empty keys and unfilled placeholders.
func CheckAPIKey(provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, placeholderPrefix) {
		return fmt.Errorf("%s: %w", provider, ErrMissingAPIKey)
	}
	return nil
}

// DataShape returns a ProviderError for a response that is missing the named field.
func DataShape(provider, field string) error {
	return &ProviderError{
		Provider:   provider,
		StatusCode: 200,
		Message:    "missing " + field,
		Err:        ErrDataShape,
	}
}

// IsConfiguration reports whether err is caused by missing configuration.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrMissingAPIKey)
}

// IsProvider reports whether err stems from a provider response, including data shape errors.
func IsProvider(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr)
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
