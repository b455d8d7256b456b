package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseSize parses a raster size token such as "256".
// Anything other than a positive base-10 integer yields an *InvalidSizeError
// carrying the token as given.
func ParseSize(token string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || n <= 0 {
		return 0, &InvalidSizeError{Value: token}
	}
	return n, nil
}

// ParseSizes parses every token in order, stopping at the first invalid one.
// Tokens may themselves be comma-separated lists ("32,64").
func ParseSizes(tokens []string) ([]int, error) {
	var sizes []int
	for _, tok := range tokens {
		for _, part := range strings.Split(tok, ",") {
			n, err := ParseSize(part)
			if err != nil {
				return nil, err
			}
			sizes = append(sizes, n)
		}
	}
	return sizes, nil
}

// ValidateSize checks that an already-parsed size is positive.
func ValidateSize(size int) error {
	if size <= 0 {
		return &InvalidSizeError{Value: strconv.Itoa(size)}
	}
	return nil
}

// ValidateSizes checks every size, returning the first failure.
func ValidateSizes(sizes []int) error {
	for _, s := range sizes {
		if err := ValidateSize(s); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDestination validates an output directory path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateDestination(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "destination cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "destination too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "destination contains invalid characters")
		}
	}

	return nil
}
