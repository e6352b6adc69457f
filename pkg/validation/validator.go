package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-triage/pkg/patient"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxRecords bounds a single batch; graph construction is quadratic.
	MaxRecords = 5000
)

// Sentinel errors for record set validation.
var (
	ErrNilRecord      = errors.New("record cannot be nil")
	ErrEmptyRecordSet = errors.New("record set is empty")
	ErrTooManyRecords = errors.New("record set exceeds maximum size")
	ErrDuplicateID    = errors.New("duplicate record id")
)

func init() {
	validate = validator.New()
}

// ValidateRecord checks a single record's attribute bounds.
func ValidateRecord(r *patient.Record) error {
	if r == nil {
		return ErrNilRecord
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("patient %d: %w", r.ID, formatValidationError(err))
	}
	return nil
}

// ValidateRecordSet checks that records is a usable pipeline input: non-empty,
// every record valid, ids unique.
func ValidateRecordSet(records []patient.Record) error {
	if len(records) == 0 {
		return ErrEmptyRecordSet
	}
	if len(records) > MaxRecords {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRecords, len(records), MaxRecords)
	}

	seen := make(map[uint64]struct{}, len(records))
	for i := range records {
		if err := ValidateRecord(&records[i]); err != nil {
			return err
		}
		if _, dup := seen[records[i].ID]; dup {
			return fmt.Errorf("%w: %d (index %d of %d)", ErrDuplicateID, records[i].ID, i, len(records))
		}
		seen[records[i].ID] = struct{}{}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first failing field
	for _, e := range validationErrs {
		switch e.Tag() {
		case "min":
			return fmt.Errorf("%s: must be at least %s, got %v", e.Field(), e.Param(), e.Value())
		case "max":
			return fmt.Errorf("%s: must not exceed %s, got %v", e.Field(), e.Param(), e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", e.Field(), e.Tag())
		}
	}

	return err
}
