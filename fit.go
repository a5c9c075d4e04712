package curvefit

import (
	"errors"
	"math"
)

// ErrTooFewPoints is returned by [Fit] and [FitWithTangents] when the
// polyline has fewer than two points.
var ErrTooFewPoints = errors.New("curvefit: polyline must have at least two points")

// maxIterations bounds the number of reparameterization rounds spent on a
// single point range before giving up and subdividing.
const maxIterations = 32

// tangentWindow is the maximum number of chord vectors considered when
// estimating an end tangent from the data.
const tangentWindow = 10

// fitOutcome describes how the refinement loop for one point range ended.
type fitOutcome int

const (
	// Refinement is still in progress.
	fitIterating fitOutcome = iota + 1
	// The candidate curve's maximum error is within tolerance.
	fitConverged
	// The error is too large for reparameterization alone to recover;
	// the range has to be subdivided.
	fitFailed
)

// Fit approximates the polyline with a sequence of cubic Bézier segments
// whose maximum squared pointwise deviation from the input stays below
// maxError. The end tangents are estimated from the data.
//
// The returned slice is non-empty; consecutive segments share an endpoint,
// and every segment's start and end point is one of the input points. Fit
// returns [ErrTooFewPoints] if the polyline has fewer than two points.
//
// The fit subdivides greedily and does not guarantee a minimal number of
// segments, nor tangent continuity across segments.
func Fit(points []Point, maxError float64) ([]CubicBez, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	leftTangent, rightTangent := estimateTangents(points)
	return fitRange(points, maxError, leftTangent, rightTangent, nil), nil
}

// FitWithTangents is like [Fit], but uses the provided unit tangent
// directions at the first and last point instead of estimating them.
// The left tangent points into the curve and the right tangent points
// backwards, out of the endpoint.
func FitWithTangents(points []Point, maxError float64, leftTangent, rightTangent Vec2) ([]CubicBez, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	return fitRange(points, maxError, leftTangent, rightTangent, nil), nil
}

// estimateTangents derives unit tangents at both ends of the polyline.
// Chord vectors anchored just inside each endpoint are blended with
// geometrically decaying weights (ratio 2, summing to 1), so that the
// tangent reflects the local curve direction rather than far-away points.
func estimateTangents(points []Point) (Vec2, Vec2) {
	n := min(tangentWindow, len(points)-2)
	if n < 1 {
		// Two points leave no interior chords; use the chord itself.
		d := points[1].Sub(points[0]).NormalizeSafe()
		return d, d.Negate()
	}
	norm := 1.0 - math.Pow(2, -float64(n))
	var left, right Vec2
	for k := 0; k < n; k++ {
		w := math.Pow(2, -float64(k+1)) / norm
		left = left.Add(points[2+k].Sub(points[1]).Mul(w))
		right = right.Add(points[len(points)-3-k].Sub(points[len(points)-2]).Mul(w))
	}
	return left.NormalizeSafe(), right.NormalizeSafe()
}

// fitRange fits points with one cubic if refinement converges, recursing on
// both halves of the range otherwise. It appends to out and returns the
// extended slice.
func fitRange(points []Point, maxError float64, leftTangent, rightTangent Vec2, out []CubicBez) []CubicBez {
	if len(points) == 2 {
		return append(out, twoPointHeuristic(points[0], points[1], leftTangent, rightTangent))
	}

	var (
		u     []float64
		c     CubicBez
		split int
	)
	state := fitIterating
	for iter := 0; iter < maxIterations; iter++ {
		if u == nil {
			u = chordLengthParameterize(points)
		} else {
			reparameterize(c, points, u)
		}
		c = generateBezier(points, u, leftTangent, rightTangent)

		var err float64
		err, split = maxSquaredError(c, points, u)
		if err < maxError {
			state = fitConverged
			break
		}
		if err > maxError*maxError {
			state = fitFailed
			break
		}
	}
	if state == fitConverged {
		return append(out, c)
	}

	// The split point itself is the most erroneous sample, so the tangent
	// at the split is taken from its neighbors. Keeping the split strictly
	// inside the range guarantees both recursive calls shrink.
	split = min(max(split, 1), len(points)-2)
	centerTangent := points[split-1].Sub(points[split+1]).NormalizeSafe()
	out = fitRange(points[:split+1], maxError, leftTangent, centerTangent, out)
	return fitRange(points[split:], maxError, centerTangent.Negate(), rightTangent, out)
}

// twoPointHeuristic places the inner control points a third of the chord
// length out along the tangents. It is also the fallback for degenerate
// least-squares solves in generateBezier.
func twoPointHeuristic(p0, p3 Point, leftTangent, rightTangent Vec2) CubicBez {
	dist := p0.Distance(p3) / 3.0
	return CubicBez{
		p0,
		p0.Translate(leftTangent.Mul(dist)),
		p3.Translate(rightTangent.Mul(dist)),
		p3,
	}
}

// chordLengthParameterize assigns each point a parameter proportional to
// the cumulative distance along the polyline, normalized to [0, 1].
func chordLengthParameterize(points []Point) []float64 {
	u := make([]float64, len(points))
	for i := 1; i < len(u); i++ {
		u[i] = u[i-1] + points[i].Distance(points[i-1])
	}
	last := u[len(u)-1]
	for i := range u {
		u[i] /= last
	}
	return u
}

// generateBezier computes the least-squares cubic through the first and
// last point whose inner control points lie along the given tangents, for
// the current parameterization. The result always has non-coincident
// control points.
func generateBezier(points []Point, u []float64, leftTangent, rightTangent Vec2) CubicBez {
	first := points[0]
	last := points[len(points)-1]
	// The degenerate chord cubic is the baseline; the solve determines how
	// far to offset its inner control points along the tangents.
	chord := CubicBez{first, first, last, last}

	// Normal equations for the two offset magnitudes: C is the symmetric
	// 2x2 Gram matrix of the per-point bases, x the right-hand side.
	var c00, c01, c11, x0, x1 float64
	for i, t := range u {
		b := 3.0 * (1.0 - t) * t
		a0 := leftTangent.Mul(b * (1.0 - t))
		a1 := rightTangent.Mul(b * t)
		c00 += a0.Dot(a0)
		c01 += a0.Dot(a1)
		c11 += a1.Dot(a1)
		d := points[i].Sub(chord.Eval(t))
		x0 += a0.Dot(d)
		x1 += a1.Dot(d)
	}

	detC0C1 := c00*c11 - c01*c01
	var alphaL, alphaR float64
	if math.Abs(detC0C1) >= 1e-5 {
		// Cramer's rule.
		alphaL = (x0*c11 - x1*c01) / detC0C1
		alphaR = (c00*x1 - c01*x0) / detC0C1
	}

	// Vanishing or negative offsets would make control points coincide
	// with the endpoints, and the Newton-Raphson denominator with them.
	// Fall back to the Wu/Barsky heuristic; subdivision will take care of
	// the accuracy.
	segLen := first.Distance(last)
	if epsilon := 1e-6 * segLen; alphaL < epsilon || alphaR < epsilon {
		return twoPointHeuristic(first, last, leftTangent, rightTangent)
	}

	return CubicBez{
		first,
		first.Translate(leftTangent.Mul(alphaL)),
		last.Translate(rightTangent.Mul(alphaR)),
		last,
	}
}

// reparameterize refines the parameterization in place, moving each
// parameter one Newton-Raphson step toward the foot point of its sample,
// the parameter where the vector to the curve is perpendicular to the
// tangent. Parameters with a vanishing denominator are left unchanged.
func reparameterize(c CubicBez, points []Point, u []float64) {
	qp := c.Differentiate()
	qpp := qp.Differentiate()
	for i, t := range u {
		d := c.Eval(t).Sub(points[i])
		dq := Vec2(qp.Eval(t))
		num := d.Dot(dq)
		den := dq.Dot(dq) + d.Dot(Vec2(qpp.Eval(t)))
		if den == 0 {
			continue
		}
		u[i] = t - num/den
	}
}

// maxSquaredError returns the largest squared distance between a sample and
// the curve at its parameter, along with the first index attaining it.
func maxSquaredError(c CubicBez, points []Point, u []float64) (float64, int) {
	var maxErr float64
	var split int
	for i, t := range u {
		if err := c.Eval(t).DistanceSquared(points[i]); err > maxErr {
			maxErr = err
			split = i
		}
	}
	return maxErr, split
}
