package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/validation"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMinimumAge(t *testing.T) {
	now := date(2026, time.June, 15)

	testCases := []struct {
		name        string
		dateOfBirth time.Time
		wantErr     bool
	}{
		{"well over the minimum", date(1990, time.January, 1), false},
		{"seventeenth birthday today", date(2009, time.June, 15), false},
		{"seventeenth birthday tomorrow", date(2009, time.June, 16), true},
		{"turned seventeen yesterday", date(2009, time.June, 14), false},
		{"sixteen years old", date(2010, time.June, 15), true},
		{"same year later month", date(2009, time.December, 1), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.MinimumAge(tc.dateOfBirth, now, 17)
			if tc.wantErr {
				assert.NotNil(t, err)
				assert.Equal(t, i18n.CodeAgeBelowMinimum, err.Code)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestStatementDate(t *testing.T) {
	now := date(2026, time.June, 15)

	testCases := []struct {
		name     string
		value    time.Time
		wantCode i18n.Code
	}{
		{"today", now, ""},
		{"tomorrow", date(2026, time.June, 16), i18n.CodeStatementDateFuture},
		{"exactly five years back same month", date(2021, time.June, 1), ""},
		{"exactly five years back same day", date(2021, time.June, 15), ""},
		{"five years one month back", date(2021, time.May, 31), i18n.CodeStatementDateTooOld},
		{"six years back", date(2020, time.June, 15), i18n.CodeStatementDateTooOld},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.StatementDate(tc.value, now, 5)
			if tc.wantCode == "" {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
				assert.Equal(t, tc.wantCode, err.Code)
			}
		})
	}
}

func TestStatementDateWindowIgnoresDay(t *testing.T) {
	// The backward bound compares year and month only; the day of month must
	// not tip a date over the edge.
	now := date(2026, time.June, 1)
	late := date(2021, time.June, 30)

	assert.Nil(t, validation.StatementDate(late, now, 5))
}

func TestPostalCode(t *testing.T) {
	assert.Nil(t, validation.PostalCode("12940"))
	assert.NotNil(t, validation.PostalCode("1294"))
	assert.NotNil(t, validation.PostalCode("129400"))
	assert.NotNil(t, validation.PostalCode("1294a"))
	assert.NotNil(t, validation.PostalCode(""))
}

func TestPhoneNumber(t *testing.T) {
	assert.Nil(t, validation.PhoneNumber("phoneNumber", "0218880123"))
	assert.NotNil(t, validation.PhoneNumber("phoneNumber", "-218880123"))
	assert.NotNil(t, validation.PhoneNumber("phoneNumber", "call-me"))
}

func TestFileExtension(t *testing.T) {
	testCases := []struct {
		value string
		ok    bool
	}{
		{"https://cdn.example.com/cover.jpg", true},
		{"https://cdn.example.com/cover.JPEG", true},
		{"https://cdn.example.com/statement.pdf", true},
		{"https://cdn.example.com/cover.png?v=2", true},
		{"https://cdn.example.com/cover.gif", false},
		{"https://cdn.example.com/cover", false},
	}

	for _, tc := range testCases {
		err := validation.FileExtension("bankAccountCoverFile", tc.value)
		if tc.ok {
			assert.Nil(t, err, tc.value)
		} else {
			assert.NotNil(t, err, tc.value)
		}
	}
}

func TestDocumentNPWP(t *testing.T) {
	file := "https://cdn.example.com/npwp.pdf"

	assert.Nil(t, validation.Document(domain.DocumentNPWP, "012345678901234", file))

	err := validation.Document(domain.DocumentNPWP, "0123456789", file)
	assert.NotNil(t, err)
	assert.Equal(t, i18n.CodeNPWPLength, err.Code)

	assert.NotNil(t, validation.Document(domain.DocumentNPWP, "", file))
}

func TestDocumentFileOnlyTypes(t *testing.T) {
	// SIUP has no number requirement, only the file.
	assert.Nil(t, validation.Document(domain.DocumentSIUP, "", "https://cdn.example.com/siup.pdf"))
	assert.NotNil(t, validation.Document(domain.DocumentSIUP, "", ""))
}

func TestDocumentUnknownType(t *testing.T) {
	assert.NotNil(t, validation.Document(domain.DocumentTypeID(99), "", "https://cdn.example.com/x.pdf"))
}

func TestStatementFileType(t *testing.T) {
	assert.Nil(t, validation.StatementFileType(10))
	assert.Nil(t, validation.StatementFileType(30))
	assert.NotNil(t, validation.StatementFileType(20))
	assert.NotNil(t, validation.StatementFileType(0))
}

func TestFieldErrorMessageLocales(t *testing.T) {
	err := validation.StatementDate(date(2030, time.January, 1), date(2026, time.June, 15), 5)
	assert.NotNil(t, err)
	assert.Equal(t, "Statement Date cannot more than today", err.Message(i18n.LocaleEN))

	old := validation.StatementDate(date(2019, time.January, 1), date(2026, time.June, 15), 5)
	assert.NotNil(t, old)
	assert.Equal(t, "Statement Date cannot more than 5 years", old.Message(i18n.LocaleEN))
}
