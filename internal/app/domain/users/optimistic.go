package users

import "slices"

// applyOptimistic runs a local list mutation ahead of its backend
// confirmation. The prior rows are snapshotted first; when the confirmation
// fails the snapshot is returned so the caller can restore the view to its
// pre-mutation state.
func applyOptimistic[T any](rows []T, mutate func([]T) []T, confirm func() error) ([]T, error) {
	snapshot := slices.Clone(rows)
	updated := mutate(slices.Clone(rows))
	if err := confirm(); err != nil {
		return snapshot, err
	}
	return updated, nil
}
