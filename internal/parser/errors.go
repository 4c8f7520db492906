package parser

import (
	"fmt"
	"strings"

	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

// ExpectedKind names what the parser was looking for when it hit the wrong token.
type ExpectedKind uint8

const (
	ExpectNothing ExpectedKind = iota
	ExpectToken
	ExpectIdentifier
	ExpectPrimaryExpression
	ExpectAssignment
	ExpectSwitchItem
	ExpectWorkgroupSizeSeparator
	ExpectGlobalItem
	ExpectAfterIdentListComma
	ExpectAfterIdentListArg
	ExpectDiagnosticAttribute
)

// ExpectedToken; Token carries the literal text for ExpectToken.
type ExpectedToken struct {
	Kind  ExpectedKind
	Token string
}

func (e ExpectedToken) String() string {
	switch e.Kind {
	case ExpectToken:
		return "'" + e.Token + "'"
	case ExpectIdentifier:
		return "identifier"
	case ExpectPrimaryExpression:
		return "expression"
	case ExpectAssignment:
		return "assignment or increment/decrement"
	case ExpectSwitchItem:
		return "switch item ('case' or 'default') or a closing curly bracket to signify the end of the switch statement ('}')"
	case ExpectWorkgroupSizeSeparator:
		return "workgroup size separator (',') or a closing parenthesis"
	case ExpectGlobalItem:
		return "global item ('struct', 'const', 'var', 'alias', 'fn', 'override', 'const_assert', ';') or the end of the file"
	case ExpectAfterIdentListComma:
		return "next argument, trailing comma, or end of list (',' or ';')"
	case ExpectAfterIdentListArg:
		return "next argument or end of list (',' or ';')"
	case ExpectDiagnosticAttribute:
		return "the 'diagnostic' attribute identifier"
	}
	return "something else"
}

func expectTok(text string) ExpectedToken {
	return ExpectedToken{Kind: ExpectToken, Token: text}
}

// Error is the single error a parse stops at. Which payload fields are set
// depends on Code.
type Error struct {
	Code  diag.Code
	Spans []source.Span // primary first

	Expected ExpectedToken // SynUnexpectedToken
	Found    string

	Name   string // offending word, attribute, extension, rule or site
	Scalar ast.Scalar
	Number *token.NumberError
	Limit  uint8
}

// Span is the primary span.
func (e *Error) Span() source.Span {
	if len(e.Spans) == 0 {
		return source.Span{}
	}
	return e.Spans[0]
}

// Message is the text without location.
func (e *Error) Message() string {
	switch e.Code {
	case diag.SynUnexpectedToken, diag.LexUnknownChar, diag.LexUnterminatedBlockComment:
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	case diag.SynBadNumber:
		if e.Number != nil {
			return "invalid numeric literal: " + e.Number.Error()
		}
		return "invalid numeric literal"
	case diag.SynBadTextureSampleType:
		return fmt.Sprintf("texture sample type must be one of f32, i32 or u32, but found %s", e.Scalar)
	case diag.SynInvalidForInitializer:
		return "for(;;) initializer is not an assignment or a function call"
	case diag.SynInvalidBreakIf:
		return "a 'break if' is only valid at the end of a continuing block"
	case diag.SynInvalidIdentUnderscore:
		return "identifier can't be '_'"
	case diag.SynReservedIdentifierPrefix:
		return "identifier starts with a reserved prefix '__'"
	case diag.SynReservedKeyword:
		return fmt.Sprintf("name '%s' is a reserved keyword", e.Name)
	case diag.SynUnknownAddressSpace:
		return fmt.Sprintf("unknown address space '%s'", e.Name)
	case diag.SynUnknownAccess:
		return fmt.Sprintf("unknown access type '%s'", e.Name)
	case diag.SynUnknownBuiltin:
		return fmt.Sprintf("unknown builtin '%s'", e.Name)
	case diag.SynUnknownInterpolation:
		return fmt.Sprintf("unknown interpolation type '%s'", e.Name)
	case diag.SynUnknownSampling:
		return fmt.Sprintf("unknown sampling type '%s'", e.Name)
	case diag.SynUnknownScalarType:
		return fmt.Sprintf("unknown scalar type '%s'", e.Name)
	case diag.SynUnknownStorageFormat:
		return fmt.Sprintf("unknown storage format '%s'", e.Name)
	case diag.SynUnknownConservativeDepth:
		return fmt.Sprintf("unknown conservative depth '%s'", e.Name)
	case diag.SynTypeNotConstructible:
		return fmt.Sprintf("type '%s' is not constructible", e.Name)
	case diag.SynRepeatedAttribute:
		return fmt.Sprintf("repeated attribute '%s'", e.Name)
	case diag.SynUnknownAttribute:
		return fmt.Sprintf("unknown attribute '%s'", e.Name)
	case diag.SynInconsistentBinding:
		return "input/output binding is not consistent"
	case diag.SynMissingAttribute:
		return fmt.Sprintf("missing attribute '%s'", e.Name)
	case diag.SynMissingWorkgroupSize:
		return "@compute entry point requires @workgroup_size"
	case diag.SynRedefinition:
		return fmt.Sprintf("redefinition of '%s'", e.Name)
	case diag.SynNestingLimit:
		return fmt.Sprintf("brace nesting limit reached (limit: %d)", e.Limit)
	case diag.SynInternalError:
		return "internal parser error: " + e.Name
	case diag.SynDirectiveAfterDecl:
		return fmt.Sprintf("expected global declaration, but found the '%s' directive", e.Name)
	case diag.SynUnknownEnableExtension:
		return fmt.Sprintf("unknown enable-extension '%s'", e.Name)
	case diag.SynUnknownLanguageExtension:
		return fmt.Sprintf("unknown language extension '%s'", e.Name)
	case diag.SynEnableExtensionNotYetImplemented:
		return fmt.Sprintf("the '%s' enable-extension is not yet supported", e.Name)
	case diag.SynEnableExtensionNotEnabled:
		return fmt.Sprintf("the '%s' enable-extension is needed here but was not enabled", e.Name)
	case diag.SynLanguageExtNotYetImplemented:
		return fmt.Sprintf("the '%s' language extension is not yet supported", e.Name)
	case diag.SynDiagnosticInvalidSeverity:
		return fmt.Sprintf("invalid diagnostic severity '%s' (expected error, warning, info or off)", e.Name)
	case diag.SynDiagnosticConflict:
		return fmt.Sprintf("conflicting `diagnostic(…)` rule filters for '%s'", e.Name)
	case diag.SynDiagnosticAttrNotYetImpl:
		return fmt.Sprintf("`@diagnostic(…)` attributes are not yet supported on %s", e.Name)
	case diag.SynDiagnosticAttrNotSupported:
		return fmt.Sprintf("`@diagnostic(…)` attributes are not allowed on %s", e.Name)
	}
	return e.Code.Title()
}

// Error renders "<message> at <span>".
func (e *Error) Error() string {
	return e.Message() + " at " + e.Span().String()
}

// Diagnostic converts the error for the reporting layer; secondary spans
// become notes.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span(), e.Message())
	for i, sp := range e.Spans[min(1, len(e.Spans)):] {
		d = d.WithNote(sp, e.noteText(i))
	}
	return d
}

func (e *Error) noteText(i int) string {
	switch e.Code {
	case diag.SynRedefinition:
		return "previous definition of '" + e.Name + "'"
	case diag.SynDiagnosticConflict:
		return "first filter for this rule"
	case diag.SynDiagnosticAttrNotYetImpl, diag.SynDiagnosticAttrNotSupported:
		return fmt.Sprintf("attribute %d", i+2)
	}
	return "related"
}

func newError(code diag.Code, sp source.Span) *Error {
	return &Error{Code: code, Spans: []source.Span{sp}}
}

func namedError(code diag.Code, sp source.Span, name string) *Error {
	return &Error{Code: code, Spans: []source.Span{sp}, Name: name}
}

func unexpected(tok token.Token, want ExpectedToken) *Error {
	code := diag.SynUnexpectedToken
	if tok.Kind == token.Invalid {
		code = diag.LexUnknownChar
		if strings.HasPrefix(tok.Text, "/*") {
			code = diag.LexUnterminatedBlockComment
		}
	}
	return &Error{
		Code:     code,
		Spans:    []source.Span{tok.Span},
		Expected: want,
		Found:    tok.Describe(),
	}
}
