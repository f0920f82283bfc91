package validation

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/danakita/borrower-onboarding/internal/i18n"
)

// FieldError is a single field-level rule violation. It carries a stable
// message code; the text the client sees is rendered at the HTTP boundary
// from the locale catalog.
type FieldError struct {
	Field string
	Code  i18n.Code
	Args  []any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed on %s (%s)", e.Field, e.Code)
}

// Message renders the violation for the given locale.
func (e *FieldError) Message(locale i18n.Locale) string {
	return i18n.T(locale, e.Code, e.Args...)
}

func Blank(field string) *FieldError {
	return &FieldError{Field: field, Code: i18n.CodeFieldBlank, Args: []any{field}}
}

func Invalid(field string) *FieldError {
	return &FieldError{Field: field, Code: i18n.CodeFieldInvalid, Args: []any{field}}
}

// Required rejects missing, empty and whitespace-only values.
func Required(field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return Blank(field)
	}
	return nil
}

// StatementDate checks the statement file date window: never in the future and
// never older than windowYears. The backward bound is a strict year+month
// comparison, so a date exactly windowYears back on the same day passes while
// windowYears plus one month back fails, whatever the day.
func StatementDate(date, now time.Time, windowYears int) *FieldError {
	if date.After(now) {
		return &FieldError{Field: "statementFileDate", Code: i18n.CodeStatementDateFuture}
	}

	months := (now.Year()-date.Year())*12 + int(now.Month()) - int(date.Month())
	if months > windowYears*12 {
		return &FieldError{
			Field: "statementFileDate",
			Code:  i18n.CodeStatementDateTooOld,
			Args:  []any{windowYears},
		}
	}
	return nil
}

// MinimumAge checks the date of birth by calendar comparison: the birthday's
// month and day matter, not just the year difference.
func MinimumAge(dateOfBirth, now time.Time, minYears int) *FieldError {
	age := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	if age < minYears {
		return &FieldError{Field: "dateOfBirth", Code: i18n.CodeAgeBelowMinimum, Args: []any{minYears}}
	}
	return nil
}

// Digits rejects values that are not exactly n ASCII digits.
func Digits(field, value string, n int) bool {
	if len(value) != n {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PostalCode must be exactly five digits.
func PostalCode(value string) *FieldError {
	if !Digits("postalCode", value, 5) {
		return &FieldError{Field: "postalCode", Code: i18n.CodePostalCodeLength, Args: []any{5}}
	}
	return nil
}

// PhoneNumber must be numeric and non-negative.
func PhoneNumber(field, value string) *FieldError {
	if strings.HasPrefix(value, "-") {
		return &FieldError{Field: field, Code: i18n.CodePhoneNegative}
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return Invalid(field)
		}
	}
	return nil
}

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".pdf":  {},
}

// FileExtension checks a document URL against the JPEG/PNG/PDF allow-list.
func FileExtension(field, fileURL string) *FieldError {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return Invalid(field)
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	if _, ok := allowedExtensions[ext]; !ok {
		return &FieldError{Field: field, Code: i18n.CodeFileExtension, Args: []any{field}}
	}
	return nil
}

// StatementFileType must be one of the known enum members.
func StatementFileType(value int) *FieldError {
	if value != 10 && value != 30 {
		return Invalid("Statement File Type")
	}
	return nil
}
