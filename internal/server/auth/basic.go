// Package auth decodes login credentials and produces password digests.
package auth

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrMalformedCredentials = errors.New("malformed credentials")

// ParseBasicCredentials extracts email and password from an Authorization
// header of the form "Basic base64(email:password)". The password is
// everything after the first colon, so it may itself contain colons.
func ParseBasicCredentials(header string) (email, password string, err error) {
	_, encoded, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return "", "", ErrMalformedCredentials
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", ErrMalformedCredentials
	}

	email, password, ok = strings.Cut(string(raw), ":")
	if !ok || email == "" || password == "" {
		return "", "", ErrMalformedCredentials
	}

	return email, password, nil
}

// BasicCredentials is the inverse of ParseBasicCredentials.
func BasicCredentials(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}
