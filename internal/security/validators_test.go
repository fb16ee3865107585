package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	t.Run("accepts pocketbase ids", func(t *testing.T) {
		assert.NoError(t, ValidateID("abc123def456ghi"))
	})

	t.Run("accepts uuids", func(t *testing.T) {
		assert.NoError(t, ValidateID("123e4567-e89b-12d3-a456-426614174000"))
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, id := range []string{"", "short", "abc123def456ghi7890", "'; DROP TABLE rooms;--"} {
			assert.Error(t, ValidateID(id), "id %q", id)
		}
	})
}

func TestValidateName(t *testing.T) {
	t.Run("trims and accepts normal names", func(t *testing.T) {
		name, err := ValidatePlayerName("  Alice O'Brien  ")
		require.NoError(t, err)
		assert.Equal(t, "Alice O'Brien", name)
	})

	t.Run("accepts accented characters", func(t *testing.T) {
		_, err := ValidatePlayerName("Chloé Müller")
		assert.NoError(t, err)
	})

	t.Run("rejects empty and overlong names", func(t *testing.T) {
		_, err := ValidatePlayerName("   ")
		assert.Error(t, err)
		_, err = ValidatePlayerName(strings.Repeat("a", MaxPlayerNameLength+1))
		assert.Error(t, err)
	})

	t.Run("rejects injection attempts", func(t *testing.T) {
		for _, name := range []string{"<script>", "a|b", "x;y", "a$(b)"} {
			_, err := ValidateRoomName(name)
			assert.Error(t, err, "name %q", name)
		}
	})
}

func TestValidatePasscode(t *testing.T) {
	t.Run("accepts simple codes", func(t *testing.T) {
		code, err := ValidatePasscode(" sunny-day-42 ")
		require.NoError(t, err)
		assert.Equal(t, "sunny-day-42", code)
	})

	t.Run("rejects empty, overlong and exotic codes", func(t *testing.T) {
		_, err := ValidatePasscode("")
		assert.Error(t, err)
		_, err = ValidatePasscode(strings.Repeat("x", MaxPasscodeLength+1))
		assert.Error(t, err)
		_, err = ValidatePasscode("pass word")
		assert.Error(t, err)
	})
}

func TestSanitizeErrorMessage(t *testing.T) {
	t.Run("masks internals", func(t *testing.T) {
		msg := SanitizeErrorMessage(errors.New("sql: no rows in result set"))
		assert.Equal(t, "An error occurred while processing your request", msg)
	})

	t.Run("passes safe messages through", func(t *testing.T) {
		msg := SanitizeErrorMessage(errors.New("room is full"))
		assert.Equal(t, "room is full", msg)
	})

	t.Run("nil is empty", func(t *testing.T) {
		assert.Equal(t, "", SanitizeErrorMessage(nil))
	})
}
