// Package imaging converts rasterized layers into standard Go images and
// encodes them for storage or transport.
//
// # Conversions
//
//   - ImageFromGrid: [0,1] float RGB grid -> 8-bit *image.NRGBA
//   - MaskImage: integer label grid -> 16-bit *image.Gray16 whose gray value
//     is the label, so masks survive PNG round trips exactly
//   - GridFromMask: the inverse of MaskImage
//
// # Reading Back
//
// MaskCache loads stored 16-bit masks and keeps them in memory by path.
// LoadPicture reads a stored picture into a color grid, and StatFile reports
// an image file's size and bit depth from its header alone.
//
// # Visualization
//
// Label masks are hard to read as raw gray values. Colorize maps each label
// to a deterministic palette color, LabelEdges extracts label boundaries, and
// Preview blends the colored instances over the picture.
//
// # Resampling
//
// Scale uses Lanczos resampling and is meant for pictures and previews only.
// Resampling a label mask would invent labels at boundaries.
//
// # Thread Safety
//
// All functions are stateless and may be called concurrently. MaskCache is
// safe for concurrent use.
package imaging
