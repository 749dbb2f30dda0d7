package engine

// System is one stage of the per-tick pipeline. Systems run single-threaded
// in priority order; correctness of the pipeline depends on that ordering,
// not on any synchronization.
type System interface {
	Update(w *World, dt float64)
	Priority() int // lower runs first
}
