package renderer

// Unwind collects cleanup funcs for a multi-step GPU setup. On failure the
// deferred Unwind releases everything created so far, newest first; on
// success Discard keeps the resources alive.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

func (u *Unwind) Discard() {
	*u = nil
}
