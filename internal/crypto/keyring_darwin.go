//go:build darwin

package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

type darwinKeyring struct{}

func newPlatformKeyring() Keyring {
	return &darwinKeyring{}
}

// Get retrieves a secret from macOS Keychain
func (k *darwinKeyring) Get(name string) (string, error) {
	value, err := keyring.Get(ServiceName, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%s not found in keychain: %w", name, err)
		}
		return "", fmt.Errorf("failed to retrieve %s from keychain: %w", name, err)
	}

	if value == "" {
		return "", fmt.Errorf("%s is empty", name)
	}

	return value, nil
}

// Set stores a secret in macOS Keychain
func (k *darwinKeyring) Set(name, value string) error {
	if value == "" {
		return errors.New("value cannot be empty")
	}

	if err := keyring.Set(ServiceName, name, value); err != nil {
		return fmt.Errorf("failed to store %s in keychain: %w", name, err)
	}

	return nil
}

// Delete removes a secret from macOS Keychain
func (k *darwinKeyring) Delete(name string) error {
	if err := keyring.Delete(ServiceName, name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%s not found in keychain: %w", name, err)
		}
		return fmt.Errorf("failed to delete %s from keychain: %w", name, err)
	}

	return nil
}

// IsAvailable checks if the macOS Keychain is accessible
func (k *darwinKeyring) IsAvailable() bool {
	// Test keychain availability by attempting a dummy operation
	// We use a test key that we immediately delete
	testKey := "__invoicer_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}

	// Clean up test key
	_ = keyring.Delete(ServiceName, testKey)
	return true
}
