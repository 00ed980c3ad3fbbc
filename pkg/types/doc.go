// Package types defines the public vocabulary shared by the tiffkit decoders:
// format parameters handed over by the container layer (byte order,
// photometric interpretation, planar configuration, extra samples,
// rationals), destination regions, decode limits, and typed errors.
//
// Design goals:
//   - Small value types that are cheap to copy and compare.
//   - Typed errors with stable categories (allocation/bounds/release/...).
//   - Paranoid bounds checking; never read or write outside a buffer.
//
// This package has no dependencies beyond the standard library.
package types
