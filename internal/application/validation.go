package application

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"gitget/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "newName" -> "new name")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"nameOrPath": "name or path",
		"newName":    "new name",
		"url":        "URL",
		"location":   "location",
		"pattern":    "path or glob",
		"batchFile":  "batch file",
		"key":        "key",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidatePackageName rejects names that cannot double as a directory name
func ValidatePackageName(fieldName, name string) error {
	if err := ValidateRequired(fieldName, name); err != nil {
		return err
	}
	if name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid package name: %s", name),
		}
	}
	return nil
}

// ValidateRecord checks a stored record against its struct constraints and
// the path rules gitget relies on.
func ValidateRecord(key string, rec domain.PackageRecord) []error {
	var errs []error
	if err := validate.Struct(rec); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				errs = append(errs, &ValidationError{
					Field:   strings.ToLower(fe.Field()),
					Message: fmt.Sprintf("failed %q check", fe.Tag()),
				})
			}
		} else {
			errs = append(errs, err)
		}
	}
	if rec.Name != key {
		errs = append(errs, &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("%q does not match key %q", rec.Name, key),
		})
	}
	if rec.Path != "" && !filepath.IsAbs(rec.Path) {
		errs = append(errs, &ValidationError{
			Field:   "path",
			Message: fmt.Sprintf("%s is not absolute", rec.Path),
		})
	}
	return errs
}
