// Package imaging turns external image sources into uniform pixel buffers.
//
// This package is the boundary between encoded images and the pipeline's
// pixel.Buffer representation. It decodes sources, converts them to the
// caller's pixel format, optionally resamples them, derives blurred guide
// maps, and encodes finished buffers back to disk.
//
// # Sources
//
// A Source is one of:
//   - Bytes: encoded image data in memory
//   - Path: an encoded image file
//   - Decoded: an image.Image that is already decoded
//
// Supported encodings are PNG, JPEG, GIF, BMP, TIFF and WebP. EXIF
// orientation is applied when present.
//
// # Resampling
//
// Load uses a Catmull-Rom cubic filter, which keeps edges crisp when an
// example is scaled to the synthesis size. GuideMap uses a linear filter
// followed by a Gaussian blur, since guides are soft by nature. A requested
// size equal to the source size never resamples.
//
// # Error Handling
//
// Decoding failures are reported as *DecodeError and are never retried.
// Resampling, guide map derivation and format conversion cannot fail.
//
// # Determinism
//
// For identical inputs and parameters every function here produces
// byte-identical output.
package imaging
