// Package detection analyzes rasterized label masks.
//
// It finds connected regions in a label grid and summarizes each visible
// shape instance of a scene: area, bounding box, centroid, class, and how
// many pieces of it remain visible after later shapes were drawn on top.
//
// Verify checks that a pair of instance and class masks agree. Stored samples
// are validated with it after a round trip through disk.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounds are inclusive on both corners
//
// # Connectivity
//
// Regions are 8-connected: diagonal neighbors belong to the same region.
// A convex shape that is only partly covered can still split into several
// fragments when a later shape cuts across it.
package detection
