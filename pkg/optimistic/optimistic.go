package optimistic

// Do applies a local state change before the backing write and undoes it when
// the write fails. forward and inverse must be exact opposites; the caller
// keeps whatever locking the shared state needs.
func Do(forward, inverse func(), write func() error) error {
	forward()
	if err := write(); err != nil {
		inverse()
		return err
	}
	return nil
}
