// Package raster draws shape scenes onto three co-registered layers: an RGB
// image, an instance mask and a class mask.
//
// # Layers
//
//   - Image: white background, shapes filled white with a black anti-aliased
//     outline. Values are normalized to [0, 1].
//   - Instances: 0 for background, otherwise the instance id. Raw ids are the
//     1-based draw order; Rasterize compacts them to 1..K.
//   - Classes: 0 for background, otherwise the shape's class id.
//
// # Footprints
//
// Each shape is rasterized to a coverage mask with golang.org/x/image/vector.
// The image is composited through that coverage; both label layers are
// painted with exact integer values on every pixel the coverage touches. A
// pixel is therefore nonzero in the instance mask exactly when it is nonzero
// in the class mask, and no image pixel outside a footprint is ever changed.
//
// Later shapes overwrite earlier ones on all three layers. Label values are
// never blended.
//
// # Thread Safety
//
// Rasterize keeps no state between calls and may run concurrently on
// different scenes.
package raster
