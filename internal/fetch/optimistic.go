package fetch

// Optimistic applies a tentative change to a local working copy before the
// server confirms it, restoring the snapshot verbatim when the server call
// fails. It generalizes the optimistic row delete every admin list view uses,
// independent of entity type.
//
// get and set read and replace the affected state; apply produces the
// tentative version; confirm performs the server call.
func Optimistic[T any](get func() T, set func(T), apply func(T) T, confirm func() error) error {
	snapshot := get()
	set(apply(snapshot))
	if err := confirm(); err != nil {
		set(snapshot)
		return err
	}
	return nil
}
