package i18n

import (
	"fmt"
	"strings"
)

// Locale selects the message catalog. Indonesian is the platform default,
// English is served when the client asks for it via Accept-Language.
type Locale string

const (
	LocaleID Locale = "id_ID"
	LocaleEN Locale = "en_US"
)

// ParseAcceptLanguage maps an Accept-Language header value onto a supported
// locale, falling back to Indonesian.
func ParseAcceptLanguage(header string) Locale {
	header = strings.ToLower(strings.TrimSpace(header))
	if strings.HasPrefix(header, "en") {
		return LocaleEN
	}
	return LocaleID
}

// Code is the stable identity of a user-facing message. Handlers translate a
// code at the boundary; services never carry rendered text.
type Code string

const (
	CodeFieldBlank            Code = "field_blank"
	CodeFieldInvalid          Code = "field_invalid"
	CodeStatementDateFuture   Code = "statement_date_future"
	CodeStatementDateTooOld   Code = "statement_date_too_old"
	CodeAgeBelowMinimum       Code = "age_below_minimum"
	CodeFileExtension         Code = "file_extension"
	CodePostalCodeLength      Code = "postal_code_length"
	CodePhoneNegative         Code = "phone_negative"
	CodeEmployeeCount         Code = "employee_count"
	CodeEstablishedFuture     Code = "established_future"
	CodeNPWPLength            Code = "npwp_length"
	CodeNPWPExists            Code = "npwp_exists"
	CodeDisbursementCount     Code = "disbursement_count"
	CodeGeographyMismatch     Code = "geography_mismatch"
	CodeGeographyParentBlank  Code = "geography_parent_blank"
	CodeStatusRestricted      Code = "status_restricted"
	CodeAlreadyPending        Code = "already_pending"
	CodeEmailNotVerified      Code = "email_not_verified"
	CodeSectionEmpty          Code = "section_empty"
	CodeFinancialYearsMissing Code = "financial_years_missing"
	CodeEStatementStale       Code = "e_statement_stale"
	CodeSyncFailed            Code = "sync_failed"
	CodeRecordNotFound        Code = "record_not_found"
	CodeInvalidCredentials    Code = "invalid_credentials"
	CodeAccountBlocked        Code = "account_blocked"
	CodeRegistrationConflict  Code = "registration_conflict"
	CodeUnauthorized          Code = "unauthorized"
	CodeInternal              Code = "internal"
)

var catalog = map[Code]map[Locale]string{
	CodeFieldBlank: {
		LocaleEN: "%s cannot be blank",
		LocaleID: "%s tidak boleh kosong",
	},
	CodeFieldInvalid: {
		LocaleEN: "Data not valid. Please check following field: %s",
		LocaleID: "Data tidak valid. Silakan periksa field berikut: %s",
	},
	CodeStatementDateFuture: {
		LocaleEN: "Statement Date cannot more than today",
		LocaleID: "Statement Date tidak boleh melebihi hari ini",
	},
	CodeStatementDateTooOld: {
		LocaleEN: "Statement Date cannot more than %d years",
		LocaleID: "Statement Date tidak boleh lebih dari %d tahun",
	},
	CodeAgeBelowMinimum: {
		LocaleEN: "You must be at least %d years old",
		LocaleID: "Usia Anda minimal %d tahun",
	},
	CodeFileExtension: {
		LocaleEN: "%s must be a JPEG, PNG or PDF file",
		LocaleID: "%s harus berupa file JPEG, PNG atau PDF",
	},
	CodePostalCodeLength: {
		LocaleEN: "Postal Code must be exactly %d digits",
		LocaleID: "Kode Pos harus tepat %d digit",
	},
	CodePhoneNegative: {
		LocaleEN: "Phone Number cannot be negative",
		LocaleID: "Nomor Telepon tidak boleh negatif",
	},
	CodeEmployeeCount: {
		LocaleEN: "Total Employee must be more than 0",
		LocaleID: "Jumlah Karyawan harus lebih dari 0",
	},
	CodeEstablishedFuture: {
		LocaleEN: "Date of Establishment cannot be in the future",
		LocaleID: "Tanggal Pendirian tidak boleh di masa depan",
	},
	CodeNPWPLength: {
		LocaleEN: "NPWP number must be exactly 15 digits",
		LocaleID: "Nomor NPWP harus tepat 15 digit",
	},
	CodeNPWPExists: {
		LocaleEN: "NPWP number is already registered",
		LocaleID: "Nomor NPWP sudah terdaftar",
	},
	CodeDisbursementCount: {
		LocaleEN: "Please select exactly one disbursement bank account",
		LocaleID: "Silakan pilih tepat satu rekening bank pencairan",
	},
	CodeGeographyMismatch: {
		LocaleEN: "City is not covered by the selected Province",
		LocaleID: "Kota tidak termasuk dalam cakupan Provinsi yang dipilih",
	},
	CodeGeographyParentBlank: {
		LocaleEN: "Province cannot be blank when City or District is provided",
		LocaleID: "Provinsi tidak boleh kosong jika Kota atau Kecamatan diisi",
	},
	CodeStatusRestricted: {
		LocaleEN: "Your status is restricted to update/add",
		LocaleID: "Status Anda tidak diizinkan untuk mengubah/menambah data",
	},
	CodeAlreadyPending: {
		LocaleEN: "Verification has already been requested",
		LocaleID: "Permintaan verifikasi sudah pernah diajukan",
	},
	CodeEmailNotVerified: {
		LocaleEN: "Please verify your email address first",
		LocaleID: "Silakan verifikasi alamat email Anda terlebih dahulu",
	},
	CodeSectionEmpty: {
		LocaleEN: "%s is Empty",
		LocaleID: "%s masih kosong",
	},
	CodeFinancialYearsMissing: {
		LocaleEN: "Please provide the last %d years of your Financial Statements",
		LocaleID: "Silakan lengkapi Laporan Keuangan %d tahun terakhir",
	},
	CodeEStatementStale: {
		LocaleEN: "Please provide an e-statement from the last %d months",
		LocaleID: "Silakan lampirkan e-statement %d bulan terakhir",
	},
	CodeSyncFailed: {
		LocaleEN: "Failed to save data, please try again",
		LocaleID: "Gagal menyimpan data, silakan coba lagi",
	},
	CodeRecordNotFound: {
		LocaleEN: "Data not found",
		LocaleID: "Data tidak ditemukan",
	},
	CodeInvalidCredentials: {
		LocaleEN: "Invalid email or password",
		LocaleID: "Email atau kata sandi salah",
	},
	CodeAccountBlocked: {
		LocaleEN: "Your account has been blocked, please contact support",
		LocaleID: "Akun Anda telah diblokir, silakan hubungi layanan pelanggan",
	},
	CodeRegistrationConflict: {
		LocaleEN: "A registration for this borrower is still in progress",
		LocaleID: "Pendaftaran untuk peminjam ini masih dalam proses",
	},
	CodeUnauthorized: {
		LocaleEN: "You are not authorized to perform this action",
		LocaleID: "Anda tidak memiliki akses untuk melakukan aksi ini",
	},
	CodeInternal: {
		LocaleEN: "Internal server error",
		LocaleID: "Terjadi kesalahan pada server",
	},
}

// T renders a message code in the given locale. Unknown codes fall back to the
// code itself so a missing catalog entry is visible instead of silent.
func T(locale Locale, code Code, args ...any) string {
	byLocale, ok := catalog[code]
	if !ok {
		return string(code)
	}
	msg, ok := byLocale[locale]
	if !ok {
		msg = byLocale[LocaleID]
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
