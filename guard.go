package thread

import "go.uber.org/multierr"

// Guard starts entry in a goroutine, calls body with the owning Thread and
// closes the Thread before returning, also when body panics. body may Join or
// Detach the Thread, Close is then a no-op. If body moves the goroutine to
// another Thread with Move or Assign, the new owner must close it.
//
// The returned error combines the errors of construction, body and Close.
func Guard(entry func(), body func(t *Thread) error, opts ...Opt) (err error) {
	t, err := New(entry, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, t.Close())
	}()
	if body == nil {
		return nil
	}
	return body(t)
}
