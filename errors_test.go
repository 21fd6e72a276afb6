package autodes_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/RodrigoDSVDF/autodes"
)

func TestSentinelErrors_ErrorsIs(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
	}{
		{"ErrInvalidDate", autodes.ErrInvalidDate},
		{"ErrInvalidMetric", autodes.ErrInvalidMetric},
		{"ErrInvalidGoal", autodes.ErrInvalidGoal},
		{"ErrStoreClosed", autodes.ErrStoreClosed},
		{"ErrUnsupportedFormat", autodes.ErrUnsupportedFormat},
		{"ErrUnsupportedVersion", autodes.ErrUnsupportedVersion},
		{"ErrInvalidMergeStrategy", autodes.ErrInvalidMergeStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("operation failed: %w", tt.sentinel)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(wrapped, %v) = false, want true", tt.sentinel)
			}
		})
	}
}

func TestValidationError_ErrorsAs(t *testing.T) {
	err := &autodes.ValidationError{Field: "DBPath", Message: "required: path to SQLite database"}

	var ve *autodes.ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As failed to extract ValidationError")
	}
	if ve.Field != "DBPath" {
		t.Errorf("Field = %q, want %q", ve.Field, "DBPath")
	}
}

func TestValidationError_ErrorFormat(t *testing.T) {
	err := &autodes.ValidationError{Field: "DBPath", Message: "required: path to SQLite database"}
	want := "config: DBPath: required: path to SQLite database"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRowError_ErrorFormat(t *testing.T) {
	err := &autodes.RowError{Line: 3, Err: autodes.ErrInvalidDate}
	want := fmt.Sprintf("import: row 3: %v", autodes.ErrInvalidDate)
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRowError_Unwrap(t *testing.T) {
	err := &autodes.RowError{Line: 3, Err: autodes.ErrInvalidDate}

	if !errors.Is(err, autodes.ErrInvalidDate) {
		t.Error("errors.Is(rowErr, ErrInvalidDate) = false, want true (Unwrap should expose inner)")
	}
}
