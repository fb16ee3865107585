package security

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Input length constraints
const (
	MaxRoomNameLength   = 100
	MaxPlayerNameLength = 50
	MaxPasscodeLength   = 32
	MinNameLength       = 1
)

var (
	// PocketBase ID regex - 15 character alphanumeric
	pocketbaseIDRegex = regexp.MustCompile(`^[a-zA-Z0-9]{15}$`)
	// UUID fallback for externally generated ids
	uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	// Name validation regex - Unicode letters, digits, spaces, apostrophes, hyphens, underscores, dots
	nameRegex = regexp.MustCompile(`^[\p{L}\p{N}\s'\-_.]+$`)
	// Passcodes stay simple so they can be read out loud
	passcodeRegex = regexp.MustCompile(`^[a-zA-Z0-9\-]+$`)
	// Dangerous characters that could be used for injection attacks
	dangerousCharsRegex = regexp.MustCompile(`[<>{}[\]\\;|&$()` + "`" + `]`)
)

// ValidateID validates that a string is a valid PocketBase ID or UUID format.
// PocketBase uses 15-character alphanumeric IDs, not standard UUIDs.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}

	if pocketbaseIDRegex.MatchString(id) {
		return nil
	}

	if uuidRegex.MatchString(strings.ToLower(id)) {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("malformed UUID: %w", err)
		}
		return nil
	}

	return fmt.Errorf("invalid ID format (expected 15-character PocketBase ID or UUID)")
}

// ValidateName validates a name string with length and character constraints.
// Returns the trimmed name.
func ValidateName(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if len(name) < MinNameLength {
		return "", fmt.Errorf("name too short (min %d characters)", MinNameLength)
	}
	if len(name) > maxLen {
		return "", fmt.Errorf("name too long (max %d characters)", maxLen)
	}

	if !nameRegex.MatchString(name) {
		return "", fmt.Errorf("name contains invalid characters (allowed: letters, numbers, spaces, apostrophes, hyphens, underscores, dots)")
	}
	if dangerousCharsRegex.MatchString(name) {
		return "", fmt.Errorf("name contains potentially dangerous characters")
	}
	for _, r := range name {
		if r < 32 || r == 127 {
			return "", fmt.Errorf("name contains control characters")
		}
	}

	return name, nil
}

// ValidateRoomName validates a room name
func ValidateRoomName(name string) (string, error) {
	return ValidateName(name, MaxRoomNameLength)
}

// ValidatePlayerName validates a player's display name
func ValidatePlayerName(name string) (string, error) {
	return ValidateName(name, MaxPlayerNameLength)
}

// ValidatePasscode validates a private room passcode
func ValidatePasscode(passcode string) (string, error) {
	passcode = strings.TrimSpace(passcode)
	if passcode == "" {
		return "", fmt.Errorf("passcode cannot be empty")
	}
	if len(passcode) > MaxPasscodeLength {
		return "", fmt.Errorf("passcode too long (max %d characters)", MaxPasscodeLength)
	}
	if !passcodeRegex.MatchString(passcode) {
		return "", fmt.Errorf("passcode may only contain letters, numbers and hyphens")
	}
	return passcode, nil
}

// SanitizeErrorMessage removes sensitive information from error messages.
// Returns a generic user-friendly error message when internals would leak.
func SanitizeErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())

	sensitivePatterns := []string{
		"sql",
		"database",
		"record",
		"collection",
		"pocketbase",
		"constraint",
		"foreign key",
		"unique",
		"duplicate key",
		"no rows",
	}

	for _, pattern := range sensitivePatterns {
		if strings.Contains(errStr, pattern) {
			return "An error occurred while processing your request"
		}
	}

	return err.Error()
}
