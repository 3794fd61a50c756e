//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

type fallbackKeyring struct{}

func newPlatformKeyring() Keyring {
	return &fallbackKeyring{}
}

// envVar maps a secret name to its environment variable, e.g.
// record-store-api-key -> INVOICER_RECORD_STORE_API_KEY
func envVar(name string) string {
	return "INVOICER_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Get retrieves a secret from the matching environment variable
func (k *fallbackKeyring) Get(name string) (string, error) {
	value := os.Getenv(envVar(name))
	if value == "" {
		return "", fmt.Errorf("%s environment variable not set", envVar(name))
	}

	return value, nil
}

// Set returns an error suggesting to set the environment variable
func (k *fallbackKeyring) Set(name, value string) error {
	if value == "" {
		return errors.New("value cannot be empty")
	}

	return fmt.Errorf("keyring not available on this platform: please set %s to '%s'", envVar(name), value)
}

// Delete returns an error suggesting to unset the environment variable
func (k *fallbackKeyring) Delete(name string) error {
	return fmt.Errorf("keyring not available on this platform: please unset %s manually", envVar(name))
}

// IsAvailable checks if the API key environment variable is set
func (k *fallbackKeyring) IsAvailable() bool {
	return os.Getenv(envVar(APIKeyName)) != ""
}
