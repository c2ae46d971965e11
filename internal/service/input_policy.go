package service

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ValidationError is raised before any network call; the notifier surfaces
// it as a warning rather than an error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var phoneAllowed = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
var nonDigits = regexp.MustCompile(`\D`)

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return validationErr("email", "Please enter a valid email address")
	}
	return nil
}

// validatePhone accepts digits with common separators and requires at least
// ten digits once separators are stripped.
func validatePhone(phone string) error {
	if !phoneAllowed.MatchString(phone) || len(nonDigits.ReplaceAllString(phone, "")) < 10 {
		return validationErr("phone", "Please enter a valid phone number")
	}
	return nil
}

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// validateImageFile enforces the upload contract: supported format and a
// hard size cap, checked before the file ever leaves the machine.
func validateImageFile(path string, size, maxSize int64, supported []string) (string, error) {
	mime, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", validationErr("image", "Please upload a valid image (JPG, PNG, or WEBP)")
	}
	allowed := false
	for _, format := range supported {
		if format == mime {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", validationErr("image", "Please upload a valid image (JPG, PNG, or WEBP)")
	}
	if size > maxSize {
		return "", validationErr("image", fmt.Sprintf("Image size must be less than %dMB", maxSize/(1024*1024)))
	}
	return mime, nil
}
