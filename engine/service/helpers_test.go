package service

// fixedRand returns the same draw every time, which makes variance() zero at 0.5.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) IntN(n int) int { return r.n % n }
