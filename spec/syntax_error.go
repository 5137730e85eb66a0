package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken  = newSyntaxError("invalid token")
	synErrInvalidNumber = newSyntaxError("invalid number")
	synErrCharLength    = newSyntaxError("a character key must contain exactly one character")

	// syntax errors
	synErrNoLayout           = newSyntaxError("a keyboard description needs a layout block")
	synErrDuplicateLayout    = newSyntaxError("a keyboard description can have only one layout block")
	synErrUnexpectedTopLevel = newSyntaxError("expected a layout, options, key or layer block")
	synErrNoLBrace           = newSyntaxError("a block must be opened by {")
	synErrUnclosedBlock      = newSyntaxError("unclosed block; } is missing")
	synErrNoSemicolon        = newSyntaxError("a row must be terminated by ;")
	synErrEmptyRow           = newSyntaxError("a row must contain at least one item")
	synErrInvalidLayoutItem  = newSyntaxError("a layout row can contain only Nk, Ns and [N]")
	synErrNoRemapColumn      = newSyntaxError("[ in a layout row must be followed by a matrix column")
	synErrUnclosedBracket    = newSyntaxError("unclosed bracket; ] is missing")
	synErrNoBackend          = newSyntaxError("a backend name is missing")
	synErrNoOptionName       = newSyntaxError("an option name is missing")
	synErrNoColon            = newSyntaxError("a colon must follow the name")
	synErrNoString           = newSyntaxError("a value must be a string")
	synErrNoKeyName          = newSyntaxError("a key declaration needs a name")
	synErrNoOut              = newSyntaxError("a key declaration can contain only out lines")
	synErrNoLayerName        = newSyntaxError("a layer name is missing")
	synErrInvalidKey         = newSyntaxError("invalid key")
	synErrUnclosedChord      = newSyntaxError("unclosed chord; < is missing")
)
