package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAcceptLanguage(t *testing.T) {
	assert.Equal(t, LocaleEN, ParseAcceptLanguage("en_US"))
	assert.Equal(t, LocaleEN, ParseAcceptLanguage("en-US,en;q=0.9"))
	assert.Equal(t, LocaleID, ParseAcceptLanguage("id_ID"))
	assert.Equal(t, LocaleID, ParseAcceptLanguage(""))
	assert.Equal(t, LocaleID, ParseAcceptLanguage("fr_FR"))
}

func TestRenderKnownCodes(t *testing.T) {
	assert.Equal(t, "Statement Date cannot more than today", T(LocaleEN, CodeStatementDateFuture))
	assert.Equal(t, "Statement Date cannot more than 5 years", T(LocaleEN, CodeStatementDateTooOld, 5))
	assert.Equal(t, "Data not valid. Please check following field: bankAccountNumber",
		T(LocaleEN, CodeFieldInvalid, "bankAccountNumber"))
	assert.Equal(t, "BankInformation is Empty", T(LocaleEN, CodeSectionEmpty, "BankInformation"))
	assert.Equal(t, "Your status is restricted to update/add", T(LocaleEN, CodeStatusRestricted))
	assert.Equal(t, "Please provide the last 2 years of your Financial Statements",
		T(LocaleEN, CodeFinancialYearsMissing, 2))
}

func TestRenderIndonesianDefault(t *testing.T) {
	assert.Equal(t, "Status Anda tidak diizinkan untuk mengubah/menambah data", T(LocaleID, CodeStatusRestricted))
	assert.Equal(t, "Data tidak ditemukan", T(LocaleID, CodeRecordNotFound))
}

func TestUnknownCodeFallsBackToItself(t *testing.T) {
	assert.Equal(t, "no_such_code", T(LocaleEN, Code("no_such_code")))
}

func TestMissingLocaleFallsBackToIndonesian(t *testing.T) {
	assert.Equal(t, catalog[CodeInternal][LocaleID], T(Locale("fr_FR"), CodeInternal))
}
