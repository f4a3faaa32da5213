package bptree

import "github.com/pkg/errors"

// ErrInvalidMaxCount is returned by New when max_count is smaller than the
// minimum a B-tree node can meaningfully enforce. Check with errors.Is.
var ErrInvalidMaxCount = errors.New("bptree: max_count must be >= 2")

func validateMaxCount(maxCount int) error {
	if maxCount < 2 {
		return errors.Wrapf(ErrInvalidMaxCount, "got %d", maxCount)
	}
	return nil
}
