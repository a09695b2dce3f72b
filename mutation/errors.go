package mutation

import "errors"

var (
	// ErrMultipleAssignmentsToColumn reports an UPDATE that assigns the
	// same column more than once.
	ErrMultipleAssignmentsToColumn = errors.New("multiple assignments in the single statement to column")

	// ErrUnknownMutationCommand reports a decoded command that could not
	// be classified.
	ErrUnknownMutationCommand = errors.New("unknown mutation command type")
)
