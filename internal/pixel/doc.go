// Package pixel defines the uniform pixel buffers shared by the texture
// preprocessing pipeline.
//
// Four pixel formats are supported, each a fixed-width array of 8-bit
// channels:
//   - Rgb: red, green, blue
//   - Rgba: red, green, blue, alpha
//   - Luma: a single intensity channel
//   - LumaA: intensity plus alpha
//
// Pipeline code is written once against the Pixel constraint and
// instantiated per format at the call site, so per-pixel loops never branch
// on the concrete format.
//
// # Alpha Weighting
//
// Alpha is treated as a weight on color rather than as an independent
// channel. WritePremultiplied scales every color channel by the normalized
// alpha so that a fully transparent bright pixel compares as black. The
// byte/float mapping used for this is symmetric:
//
//	normalized = (b + 0.5) / 256
//	b          = floor(normalized * 256), clamped to 0..255
//
// Every byte survives a Normalize/Denormalize round trip unchanged.
//
// # Ownership
//
// A Buffer is owned by whichever stage currently holds it. Stages that
// modify a buffer do so in place; stages that derive a new buffer never
// alias the pixels of their input.
package pixel
