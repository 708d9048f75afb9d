package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for externally visible identifiers (Stripe-style).
const (
	PrefixPackage  = "pkg"
	PrefixPurchase = "pur"
	PrefixUser     = "usr"
)

// Generate creates a cryptographically random Base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates an ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	shortID, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + shortID, nil
}

func NewPackageID() (string, error) {
	return GenerateWithPrefix(PrefixPackage, DefaultLength)
}

func NewPurchaseID() (string, error) {
	return GenerateWithPrefix(PrefixPurchase, DefaultLength)
}

func NewUserID() (string, error) {
	return GenerateWithPrefix(PrefixUser, DefaultLength)
}

// ParsePrefixedID splits "pkg_xK9mP2vL3nQa" into its prefix and short ID.
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	prefix, shortID, found := strings.Cut(prefixedID, "_")
	if !found || prefix == "" || shortID == "" {
		return "", "", fmt.Errorf("invalid prefixed ID format: %q", prefixedID)
	}
	return prefix, shortID, nil
}

// ValidatePrefix checks that prefixedID is well formed and carries expectedPrefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, shortID, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	for _, r := range shortID {
		if !strings.ContainsRune(alphabet, r) {
			return fmt.Errorf("invalid character %q in ID %q", r, prefixedID)
		}
	}
	return nil
}
