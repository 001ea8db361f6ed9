package interact

import "errors"

// ErrAborted signals the user aborted input (e.g., Ctrl+C or end of input).
var ErrAborted = errors.New("interact: aborted")
