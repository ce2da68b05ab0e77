package blocks

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeConversionFailed tags every block conversion failure folded into a fallback comment.
const TextCodeConversionFailed = "BLOCK_CONVERSION_FAILED"

var (
	// ErrMissingPayload indicates a text-bearing block without an object under data[type].
	ErrMissingPayload = errors.New("blocks: missing payload")
	// ErrNilConverter is returned by RegisterChecked when the converter is nil.
	ErrNilConverter = errors.New("blocks: nil converter")
	// ErrBlankType is returned by RegisterChecked when the block type is blank.
	ErrBlankType = errors.New("blocks: blank block type")
)

func conversionError(block blockRef, cause error) *goerrors.Error {
	return goerrors.Wrap(cause, goerrors.CategoryInternal, "block conversion failed").
		WithTextCode(TextCodeConversionFailed).
		WithMetadata(map[string]any{
			"block_type": block.typ,
			"block_id":   block.id,
		})
}

func panicError(block blockRef, recovered any) *goerrors.Error {
	if err, ok := recovered.(error); ok {
		return conversionError(block, fmt.Errorf("converter panic: %w", err))
	}
	return conversionError(block, fmt.Errorf("converter panic: %v", recovered))
}

type blockRef struct {
	typ string
	id  string
}
