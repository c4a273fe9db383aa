package room

// CrowdField returns, per cell in row-major order, the number of cleaners on
// the cell divided by the largest such count. All zeros when there are no
// cleaners.
func (r *Room) CrowdField() []float32 {
	w, h := r.cfg.Width, r.cfg.Height
	counts := make([]int, w*h)
	peak := 0
	for _, c := range r.cleaners {
		p, ok := r.grid.PosOf(c)
		if !ok {
			continue
		}
		i := p.Y*w + p.X
		counts[i]++
		peak = max(peak, counts[i])
	}
	field := make([]float32, len(counts))
	if peak == 0 {
		return field
	}
	for i, n := range counts {
		field[i] = float32(n) / float32(peak)
	}
	return field
}
