package adzuna

import (
	"errors"
	"net/url"
	"strings"
)

const redacted = "REDACTED"

// redact strips the API key from transport errors, which embed the full
// request URL with the key query-escaped.
func redact(err error, secret string) error {
	if err == nil || secret == "" {
		return err
	}

	msg := err.Error()
	cleaned := strings.ReplaceAll(msg, url.QueryEscape(secret), redacted)
	cleaned = strings.ReplaceAll(cleaned, secret, redacted)
	if cleaned == msg {
		return err
	}
	return errors.New(cleaned)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
