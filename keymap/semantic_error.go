package keymap

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	ErrEmptyLayout             = newSemanticError("a layout needs at least one row")
	ErrZeroCount               = newSemanticError("a count must be at least 1")
	ErrOverlappingKeys         = newSemanticError("overlapping keys")
	ErrInconsistentMatrixWidth = newSemanticError("inconsistent matrix width")
	ErrRemapOutOfMatrix        = newSemanticError("remapped column is outside the matrix")
	ErrCoordinateOutOfRange    = newSemanticError("coordinate out of range")
	ErrDuplicateLayer          = newSemanticError("duplicate layer")
	ErrImpossibleKeyLocation   = newSemanticError("impossible key location")
	ErrBadChordPositions       = newSemanticError("a chord must sit between two keys")
	ErrUnknownNamedKey         = newSemanticError("unknown key")
	ErrUnknownLayer            = newSemanticError("unknown layer")
	ErrUnknownCharKey          = newSemanticError("unknown character key")
	ErrUnknownBackend          = newSemanticError("unknown backend")
	ErrDuplicateKey            = newSemanticError("duplicate key declaration")
	ErrOptionRequired          = newSemanticError("option required")
	ErrInvalidOptionValue      = newSemanticError("invalid option value")
)
