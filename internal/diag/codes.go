package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003
	LexNonNormalizedIdent       Code = 1004

	// Синтаксис: токены и литералы
	SynInfo                     Code = 2000
	SynUnexpectedToken          Code = 2001
	SynBadNumber                Code = 2002
	SynBadTextureSampleType     Code = 2003
	SynInvalidForInitializer    Code = 2004
	SynInvalidBreakIf           Code = 2005
	SynInvalidIdentUnderscore   Code = 2006
	SynReservedIdentifierPrefix Code = 2007
	SynReservedKeyword          Code = 2008

	// Синтаксис: таблицы ключевых слов
	SynUnknownAddressSpace      Code = 2010
	SynUnknownAccess            Code = 2011
	SynUnknownBuiltin           Code = 2012
	SynUnknownInterpolation     Code = 2013
	SynUnknownSampling          Code = 2014
	SynUnknownScalarType        Code = 2015
	SynUnknownStorageFormat     Code = 2016
	SynUnknownConservativeDepth Code = 2017
	SynTypeNotConstructible     Code = 2018

	// Атрибуты
	SynRepeatedAttribute    Code = 2020
	SynUnknownAttribute     Code = 2021
	SynInconsistentBinding  Code = 2022
	SynMissingAttribute     Code = 2023
	SynMissingWorkgroupSize Code = 2024

	// Области видимости и ограничения
	SynRedefinition  Code = 2030
	SynNestingLimit  Code = 2031
	SynInternalError Code = 2039

	// Директивы
	SynDirectiveAfterDecl               Code = 2040
	SynUnknownEnableExtension           Code = 2041
	SynUnknownLanguageExtension         Code = 2042
	SynEnableExtensionNotYetImplemented Code = 2043
	SynEnableExtensionNotEnabled        Code = 2044
	SynLanguageExtNotYetImplemented     Code = 2045

	// Фильтры диагностик
	SynDiagnosticInvalidSeverity  Code = 2050
	SynDiagnosticConflict         Code = 2051
	SynDiagnosticAttrNotYetImpl   Code = 2052
	SynDiagnosticAttrNotSupported Code = 2053
	SynUnknownDiagnosticRule      Code = 2054

	// Ввод-вывод
	IOLoadFileError Code = 4001
	IOReadDirError  Code = 4002
	IOCacheError    Code = 4003

	// Конфигурация
	PrjBadConfig Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                         "Unknown error",
		LexInfo:                             "Lexical information",
		LexUnknownChar:                      "Unknown character",
		LexUnterminatedBlockComment:         "Unterminated block comment",
		LexBadNumber:                        "Bad number literal",
		LexNonNormalizedIdent:               "Identifier is not in Unicode NFC",
		SynInfo:                             "Syntax information",
		SynUnexpectedToken:                  "Unexpected token",
		SynBadNumber:                        "Bad number literal",
		SynBadTextureSampleType:             "Invalid texture sample type",
		SynInvalidForInitializer:            "Invalid for-loop initializer",
		SynInvalidBreakIf:                   "break if outside continuing block",
		SynInvalidIdentUnderscore:           "Identifier cannot be '_'",
		SynReservedIdentifierPrefix:         "Identifier uses reserved prefix '__'",
		SynReservedKeyword:                  "Reserved keyword used as identifier",
		SynUnknownAddressSpace:              "Unknown address space",
		SynUnknownAccess:                    "Unknown access mode",
		SynUnknownBuiltin:                   "Unknown builtin",
		SynUnknownInterpolation:             "Unknown interpolation",
		SynUnknownSampling:                  "Unknown sampling",
		SynUnknownScalarType:                "Unknown scalar type",
		SynUnknownStorageFormat:             "Unknown storage format",
		SynUnknownConservativeDepth:         "Unknown conservative depth",
		SynTypeNotConstructible:             "Type is not constructible",
		SynRepeatedAttribute:                "Repeated attribute",
		SynUnknownAttribute:                 "Unknown attribute",
		SynInconsistentBinding:              "Inconsistent binding",
		SynMissingAttribute:                 "Missing attribute",
		SynMissingWorkgroupSize:             "Compute entry point without workgroup size",
		SynRedefinition:                     "Redefinition",
		SynNestingLimit:                     "Brace nesting limit exceeded",
		SynInternalError:                    "Internal parser error",
		SynDirectiveAfterDecl:               "Directive after first declaration",
		SynUnknownEnableExtension:           "Unknown enable extension",
		SynUnknownLanguageExtension:         "Unknown language extension",
		SynEnableExtensionNotYetImplemented: "Enable extension not yet implemented",
		SynEnableExtensionNotEnabled:        "Enable extension not enabled",
		SynLanguageExtNotYetImplemented:     "Language extension not yet implemented",
		SynDiagnosticInvalidSeverity:        "Invalid diagnostic severity",
		SynDiagnosticConflict:               "Conflicting diagnostic filters",
		SynDiagnosticAttrNotYetImpl:         "Diagnostic attribute not yet implemented here",
		SynDiagnosticAttrNotSupported:       "Diagnostic attribute not supported here",
		SynUnknownDiagnosticRule:            "Unknown diagnostic rule",
		IOLoadFileError:                     "Failed to load file",
		IOReadDirError:                      "Failed to read directory",
		IOCacheError:                        "Parse cache error",
		PrjBadConfig:                        "Invalid configuration file",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
