package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/transheet/internal/sheet"
)

// ParseDocumentName splits the base name of path, <domain>.<locale>.<ext>,
// into its domain and locale. The extension must equal ext.
func ParseDocumentName(path, ext string) (domain, locale string, err error) {
	base := filepath.Base(path)
	suffix := "." + ext
	if !strings.HasSuffix(base, suffix) {
		return "", "", fmt.Errorf("%w: %q does not end in %q", ErrInvalidDocumentName, base, suffix)
	}

	parts := strings.Split(strings.TrimSuffix(base, suffix), ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q is not <domain>.<locale>%s", ErrInvalidDocumentName, base, suffix)
	}
	if err := checkLocale(parts[1]); err != nil {
		return "", "", fmt.Errorf("%q: %w", base, err)
	}
	return parts[0], parts[1], nil
}

// DocumentName returns the file name of the document for (domain, locale).
func DocumentName(domain, locale, ext string) string {
	return domain + "." + locale + "." + ext
}

// checkLocale rejects locales that would collide with the key columns.
func checkLocale(locale string) error {
	if locale == sheet.FieldDomain || locale == sheet.FieldID {
		return fmt.Errorf("%w: locale %q collides with the %q column", ErrInvalidDocumentName, locale, locale)
	}
	return nil
}

// validateNames checks that domain and locale can form a document name.
func (e *Engine) validateNames(domain, locale string) error {
	if err := e.fs.ValidateIdentifier(domain); err != nil {
		return fmt.Errorf("%w: domain: %v", ErrInvalidDocumentName, err)
	}
	if err := e.fs.ValidateIdentifier(locale); err != nil {
		return fmt.Errorf("%w: locale: %v", ErrInvalidDocumentName, err)
	}
	return checkLocale(locale)
}
