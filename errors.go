package rank9sel

import "errors"

// ErrOutOfRange is returned by the checked query wrappers (Index,
// Rank, Select) when the supplied position or rank falls outside the
// permitted interval. The unchecked counterparts never return it.
var ErrOutOfRange = errors.New("rank9sel: position out of range")
