package store

import "sync"

// Select projects the current state through fn.
func Select[T any](s *Store, fn func(State) T) T {
	return fn(s.Snapshot())
}

// Watch subscribes to the slice of state chosen by selector. fn runs only
// when equal reports that the selected value differs from the last one
// delivered.
//
// Snapshots older than one already seen are dropped, and fn is never run
// concurrently with itself: while one goroutine is delivering, newer values
// are parked and the delivering goroutine hands over only the latest. fn may
// mutate the store; the resulting change is delivered after fn returns.
func Watch[T any](s *Store, selector func(State) T, equal func(a, b T) bool, fn func(T)) (unsubscribe func()) {
	var (
		mu       sync.Mutex
		pending  *T
		draining bool
	)
	init := s.Snapshot()
	last := selector(init)
	seen := init.Version

	return s.Subscribe(func(st State) {
		mu.Lock()
		if st.Version <= seen {
			mu.Unlock()
			return
		}
		seen = st.Version
		next := selector(st)
		pending = &next
		if draining {
			mu.Unlock()
			return
		}
		draining = true
		for pending != nil {
			v := *pending
			pending = nil
			if equal(last, v) {
				continue
			}
			last = v
			mu.Unlock()
			deliverWatched(fn, v, func() {
				mu.Lock()
				draining = false
				pending = nil
				mu.Unlock()
			})
			mu.Lock()
		}
		draining = false
		mu.Unlock()
	})
}

// deliverWatched runs fn and calls reset if fn panics. The panic itself
// propagates to the store, which logs it.
func deliverWatched[T any](fn func(T), v T, reset func()) {
	ok := false
	defer func() {
		if !ok {
			reset()
		}
	}()
	fn(v)
	ok = true
}
