package validation

import (
	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/i18n"
)

// documentRule is one legal-document validation variant. Each document type
// carries its own number rule; every type shares the file allow-list check.
type documentRule struct {
	name           string
	validateNumber func(number string) *FieldError
}

var documentRules = map[domain.DocumentTypeID]documentRule{
	domain.DocumentNPWP: {
		name: "NPWP",
		validateNumber: func(number string) *FieldError {
			if err := Required("documentNumber", number); err != nil {
				return err
			}
			if !Digits("documentNumber", number, 15) {
				return &FieldError{Field: "documentNumber", Code: i18n.CodeNPWPLength}
			}
			return nil
		},
	},
	domain.DocumentSIUP:          {name: "SIUP"},
	domain.DocumentAktaPendirian: {name: "Akta Pendirian"},
	domain.DocumentAktaTerbaru:   {name: "Akta Terbaru"},
	domain.DocumentMenkumham:     {name: "MENKUHAM"},
	domain.DocumentTDP:           {name: "TDP"},
	domain.DocumentSKDU:          {name: "SKDU"},
}

// DocumentTypeName returns the display name of a known document type.
func DocumentTypeName(typeID domain.DocumentTypeID) (string, bool) {
	rule, ok := documentRules[typeID]
	return rule.name, ok
}

// Document validates a legal document submission against the ruleset of its
// document type. An unknown type is an invalid documentType field.
func Document(typeID domain.DocumentTypeID, number, fileURL string) *FieldError {
	rule, ok := documentRules[typeID]
	if !ok {
		return Invalid("documentType")
	}
	if rule.validateNumber != nil {
		if err := rule.validateNumber(number); err != nil {
			return err
		}
	}
	if err := Required("documentFile", fileURL); err != nil {
		return err
	}
	return FileExtension("documentFile", fileURL)
}
