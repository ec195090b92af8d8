package y7

import (
	"errors"
	"fmt"

	"github.com/inkbound/novelbridge/pkg/common"
)

// Sentinel errors for the four caller-visible failure kinds. A fifth
// kind, a bubbled model-constraint violation from the Novel Service, is
// surfaced verbatim and is not one of these sentinels.
var (
	ErrLockedByExternalTool = common.ErrLocked
	ErrParseFailure         = common.ErrParseFailure
	ErrWriteFailure         = common.ErrWriteFailure
	ErrOverwriteFailure     = common.ErrOverwriteFailure
)

// Localize renders err the way the legacy tool's own messages read, for
// callers that want to show the error to an end user rather than log it.
func Localize(err error) string {
	var ce *common.Error
	if errors.As(err, &ce) {
		switch {
		case errors.Is(ce, ErrLockedByExternalTool):
			return "yWriter seems to be open. Please close first."
		case errors.Is(ce, ErrParseFailure):
			return fmt.Sprintf("Can not process file - %s", ce.Err)
		case errors.Is(ce, ErrOverwriteFailure):
			return fmt.Sprintf(`Cannot overwrite file: "%s".`, ce.Path)
		case errors.Is(ce, ErrWriteFailure):
			return fmt.Sprintf(`Cannot write file: "%s".`, ce.Path)
		}
	}
	return err.Error()
}
