package combat

// SeqRand replays fixed values; used by tests in this and other packages.
// Float64 and IntN consume separate queues and repeat the last value once
// exhausted.
type SeqRand struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

// Float64 returns the next queued float.
func (r *SeqRand) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0
	}
	v := r.Floats[min(r.fi, len(r.Floats)-1)]
	r.fi++
	return v
}

// IntN returns the next queued int modulo n.
func (r *SeqRand) IntN(n int) int {
	if len(r.Ints) == 0 || n <= 0 {
		return 0
	}
	v := r.Ints[min(r.ii, len(r.Ints)-1)]
	r.ii++
	return v % n
}

// FloatCalls returns how many floats were drawn.
func (r *SeqRand) FloatCalls() int {
	return r.fi
}
