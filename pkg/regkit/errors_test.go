package regkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyErrorMessage(t *testing.T) {
	err := &KeyError{Input: "Bad Name", Reason: "name must be [a-z0-9/._-]+"}
	assert.Contains(t, err.Error(), "Bad Name")
	assert.Contains(t, err.Error(), "[a-z0-9/._-]+")
}

func TestRegistrationErrorUnwrap(t *testing.T) {
	err := &RegistrationError{
		Key: MustKey("mods", "sword"),
		Op:  "register",
		Err: ErrDuplicateKey,
	}

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "mods:sword")
	assert.Contains(t, err.Error(), "register")
}

func TestRegistrationErrorWrapping(t *testing.T) {
	// Sentinels survive another layer of wrapping.
	inner := &RegistrationError{Key: MustKey("mods", "sword"), Op: "register", Err: ErrRegistryFinalized}
	outer := fmt.Errorf("plugin load: %w", inner)

	assert.ErrorIs(t, outer, ErrRegistryFinalized)

	var regErr *RegistrationError
	assert.True(t, errors.As(outer, &regErr))
	assert.Equal(t, MustKey("mods", "sword"), regErr.Key)
}
