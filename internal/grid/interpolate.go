package grid

import "fmt"

// RegularLinearInterpolator performs uniform 1D linear interpolation over a
// table of y-values spanning [xmin, xmax].
type RegularLinearInterpolator struct {
	ydata  []float64
	slopes []float64
	xmin   float64
	xmax   float64
	dx     float64
}

// NewRegularLinearInterpolator constructs an interpolator from at least two
// uniformly spaced samples.
func NewRegularLinearInterpolator(ydata []float64, xmin, xmax float64) (*RegularLinearInterpolator, error) {
	if len(ydata) < 2 {
		return nil, fmt.Errorf("grid: at least two elements are required for interpolation, found %d", len(ydata))
	}
	if xmin >= xmax {
		return nil, fmt.Errorf("grid: interpolation requires xmin < xmax, found xmin=%e, xmax=%e", xmin, xmax)
	}

	dx := (xmax - xmin) / float64(len(ydata)-1)

	slopes := make([]float64, len(ydata)-1)
	for i := range slopes {
		slopes[i] = (ydata[i+1] - ydata[i]) / dx
	}

	return &RegularLinearInterpolator{ydata: ydata, slopes: slopes, xmin: xmin, xmax: xmax, dx: dx}, nil
}

// At evaluates the interpolant at x, which must lie in [xmin, xmax].
func (r *RegularLinearInterpolator) At(x float64) (float64, error) {
	if x < r.xmin || x > r.xmax {
		return 0, fmt.Errorf("grid: interpolator access out of range: x=%e not in [%e, %e]", x, r.xmin, r.xmax)
	}

	index := int((x - r.xmin) / r.dx)
	if index >= len(r.slopes) {
		index = len(r.slopes) - 1
	}

	xAtIndex := r.xmin + float64(index)*r.dx
	return r.ydata[index] + r.slopes[index]*(x-xAtIndex), nil
}

// AxisLimits is the [min, max] span of one interpolation axis.
type AxisLimits struct {
	Min, Max float64
}

// TrilinearInterpolator performs uniform trilinear interpolation over a
// Grid3D spanning three independent axis ranges.
type TrilinearInterpolator struct {
	grid               *Grid3D
	rLimits            AxisLimits
	sLimits            AxisLimits
	uLimits            AxisLimits
	dr, ds, du         float64
}

// NewTrilinearInterpolator constructs an interpolator over grid with the
// given axis limits.
func NewTrilinearInterpolator(g *Grid3D, rLimits, sLimits, uLimits AxisLimits) (*TrilinearInterpolator, error) {
	shape := g.Shape()
	if shape.N0 < 2 || shape.N1 < 2 || shape.N2 < 2 {
		return nil, fmt.Errorf("grid: trilinear interpolation requires at least two samples per axis, found shape %+v", shape)
	}

	dr := (rLimits.Max - rLimits.Min) / float64(shape.N0-1)
	ds := (sLimits.Max - sLimits.Min) / float64(shape.N1-1)
	du := (uLimits.Max - uLimits.Min) / float64(shape.N2-1)

	return &TrilinearInterpolator{grid: g, rLimits: rLimits, sLimits: sLimits, uLimits: uLimits, dr: dr, ds: ds, du: du}, nil
}

// At evaluates the interpolant at (r, s, u).
func (t *TrilinearInterpolator) At(r, s, u float64) (float64, error) {
	shape := t.grid.Shape()

	i0, fr, err := axisIndex(r, t.rLimits, t.dr, shape.N0)
	if err != nil {
		return 0, err
	}
	i1, fs, err := axisIndex(s, t.sLimits, t.ds, shape.N1)
	if err != nil {
		return 0, err
	}
	i2, fu, err := axisIndex(u, t.uLimits, t.du, shape.N2)
	if err != nil {
		return 0, err
	}

	c000 := t.grid.At(i0, i1, i2)
	c100 := t.grid.At(i0+1, i1, i2)
	c010 := t.grid.At(i0, i1+1, i2)
	c110 := t.grid.At(i0+1, i1+1, i2)
	c001 := t.grid.At(i0, i1, i2+1)
	c101 := t.grid.At(i0+1, i1, i2+1)
	c011 := t.grid.At(i0, i1+1, i2+1)
	c111 := t.grid.At(i0+1, i1+1, i2+1)

	c00 := c000*(1-fr) + c100*fr
	c10 := c010*(1-fr) + c110*fr
	c01 := c001*(1-fr) + c101*fr
	c11 := c011*(1-fr) + c111*fr

	c0 := c00*(1-fs) + c10*fs
	c1 := c01*(1-fs) + c11*fs

	return c0*(1-fu) + c1*fu, nil
}

// axisIndex returns the lower grid index and fractional offset for value v
// along one axis, clamping the final index so that index+1 remains in
// bounds.
func axisIndex(v float64, limits AxisLimits, step float64, size int) (int, float64, error) {
	if v < limits.Min || v > limits.Max {
		return 0, 0, fmt.Errorf("grid: trilinear interpolator access out of range: v=%e not in [%e, %e]", v, limits.Min, limits.Max)
	}

	index := int((v - limits.Min) / step)
	if index >= size-1 {
		index = size - 2
	}

	vAtIndex := limits.Min + float64(index)*step
	frac := (v - vAtIndex) / step

	return index, frac, nil
}
