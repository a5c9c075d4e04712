// Package curvefit approximates ordered sequences of 2D points with
// piecewise cubic Bézier curves. Given a polyline, for example a densely
// sampled trajectory or a drawn path, it produces a small number of cubic
// segments whose pointwise deviation from the input stays below a
// caller-supplied error bound, turning dense point data into a compact,
// editable parametric representation.
//
// # Algorithm
//
// The fit is Schneider's algorithm from Graphics Gems: an iterative
// least-squares fit of a single cubic, with foot-point re-parameterization
// via Newton-Raphson between iterations, and recursive subdivision at the
// point of maximum error when refinement alone cannot reach the tolerance.
// It is a greedy heuristic; the result is compact but not guaranteed to
// have the minimum possible number of segments, and adjacent segments are
// only G0 continuous (they share an endpoint, with compatible but not
// necessarily equal tangents).
//
// The entry points are [Fit], which estimates the end tangents from the
// data, and [FitWithTangents], which accepts caller-supplied unit tangents.
// The latter is what the recursion itself uses to keep directions
// consistent across split points.
//
// # Geometry types
//
// The package provides the small set of geometric primitives the fit is
// expressed in: [Point] and [Vec2] value types with the usual arithmetic,
// and the Bézier family [CubicBez], [QuadBez], and [Line]. Differentiating
// a cubic yields a quadratic and differentiating that yields a line, via
// the standard hodograph construction of scaled control point differences;
// the fit's Newton-Raphson step is built on exactly this chain.
//
// All curves evaluate at t ∈ [0, 1] and all computation is pure and
// deterministic; there is no shared state across calls.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [An Algorithm for Automatically Fitting Digitized Curves] by Philip J. Schneider
//   - [A Primer on Bézier Curves]
//
// [An Algorithm for Automatically Fitting Digitized Curves]: https://dl.acm.org/doi/10.5555/90767.90941
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
package curvefit
