package token

// Kind is the token class.
type Kind uint8

const (
	// Invalid marks a character the lexer could not classify.
	Invalid Kind = iota
	// End marks the end of input.
	End

	Separator           // : ; , .
	Paren               // ( ) { } [ ] < >
	Attribute           // @
	Number              // numeric literal, see Token.Num / Token.NumErr
	Word                // identifiers, keywords, type names; '_' included
	Operation           // = + - * / % & | ^ ! ~
	LogicalOperation    // == != <= >= && || (Op: '=' '!' '<' '>' '&' '|')
	ShiftOperation      // << >> (Op: '<' '>')
	AssignmentOperation // += -= ... <<= >>= (Op: the leading char, '<'/'>' for shifts)
	Increment           // ++
	Decrement           // --
	Arrow               // ->
)

var kindNames = [...]string{
	Invalid:             "invalid",
	End:                 "end",
	Separator:           "separator",
	Paren:               "paren",
	Attribute:           "attribute",
	Number:              "number",
	Word:                "word",
	Operation:           "operation",
	LogicalOperation:    "logical operation",
	ShiftOperation:      "shift operation",
	AssignmentOperation: "assignment operation",
	Increment:           "increment",
	Decrement:           "decrement",
	Arrow:               "arrow",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(?)"
}
