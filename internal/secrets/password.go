package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups the app's secrets in the OS keychain.
	KeyringService = "assethunt"
)

var ErrTokenNotFound = errors.New("rpc token not found (set it in the keychain or via config/env)")

func GetRPCToken(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) == "" {
		return "", ErrTokenNotFound
	}
	tok, err := keyring.Get(KeyringService, keyringAccount)
	if err != nil || strings.TrimSpace(tok) == "" {
		return "", ErrTokenNotFound
	}
	return tok, nil
}

func SetRPCToken(keyringAccount string, token string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, token)
}

func DeleteRPCToken(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

// ResolveToken prefers an explicit token and falls back to the keychain.
func ResolveToken(token, keyringAccount string) (string, error) {
	if t := strings.TrimSpace(token); t != "" {
		return t, nil
	}
	return GetRPCToken(keyringAccount)
}
