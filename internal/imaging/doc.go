// Package imaging holds the pixel data model and the image I/O collaborators
// used by color analysis.
//
// It provides three things:
//   - PixelImage, an immutable height x width x 3 integer buffer that also
//     implements image.Image
//   - decoding (Decode, ImageCache) for PNG, JPEG, GIF, BMP, TIFF and WebP
//   - resampling (Resampler) and region cropping (CropRegion)
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner.
// X increases rightward and Y increases downward. Pixels are visited in
// row-major order: all of row 0 left to right, then row 1, and so on.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. PixelImage values are never mutated
// by analysis code and can be shared read-only between goroutines.
package imaging
