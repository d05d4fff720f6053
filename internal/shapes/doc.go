// Package shapes builds the geometry for synthetic shape scenes.
//
// A scene is an ordered list of Descriptors. Each Descriptor records the shape
// type, its class id, the nominal size it was built for, the random transform
// that placed it, and its canvas-space geometry. The order of a scene is its
// draw order: later shapes are drawn on top of earlier ones, and the 1-based
// position of a descriptor is its raw instance id.
//
// # Geometry
//
// Shapes fall into two categories:
//   - Round (circle, ellipse): a center point. The drawn ellipse spans the
//     box between the transform offset and that center. Rotation has no
//     effect on round shapes.
//   - Polygon (triangle, star, rectangle, square): a closed corner list,
//     rotated and then translated into canvas coordinates.
//
// All coordinates follow the image convention: origin at the top-left corner,
// X increases rightward, Y increases downward.
//
// # Randomness
//
// Every random draw goes through a Source. A Generator owns one Source and is
// not safe for concurrent use; generate independent scenes in parallel by
// giving each goroutine its own Generator and seed.
//
// # Error Handling
//
// Failures are reported as wrapped sentinel errors:
//   - ErrInvalidShapeType: the shape type is unknown or has no class id
//   - ErrDegenerateGeometry: the nominal size is zero or negative
//
// A scene either builds completely or not at all.
package shapes
