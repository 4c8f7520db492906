package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

type TokenOutput struct {
	Kind   string      `json:"kind"`
	Op     string      `json:"op,omitempty"`
	Text   string      `json:"text,omitempty"`
	Span   source.Span `json:"span"`
	Number string      `json:"number,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-20s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		switch {
		case tok.NumErr != nil:
			fmt.Fprintf(w, " (error: %s)", tok.NumErr.Error())
		case tok.Kind == token.Number:
			fmt.Fprintf(w, " (%s)", tok.Num.String())
		}
		fmt.Fprintln(w)

		if tok.Kind == token.End {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))

	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		if tok.Op != 0 {
			out.Op = string(tok.Op)
		}
		switch {
		case tok.NumErr != nil:
			out.Error = tok.NumErr.Error()
		case tok.Kind == token.Number:
			out.Number = tok.Num.String()
		}
		output = append(output, out)

		if tok.Kind == token.End {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
