// Package worldgen generates deterministic procedural planetary terrain for
// tactical-RPG maps. Given a seed and a GenerationParams, a Generator drives
// the native plate-tectonics solver, post-processes elevation, derives a
// climate stack, and resolves D-8 hydrology, returning a single
// WorldGenerationResult whose fields are reproducible bit-for-bit across runs
// with identical inputs.
//
// Internal packages implement one pipeline component apiece:
//
//	internal/nativeplate  - C1, FFI binding to the external plate solver
//	internal/elevation    - C2, noise, border oceans, sea depth
//	internal/climate      - C3-C6, temperature, precipitation, rain shadow, coastal moisture
//	internal/hydrology    - C7, flow directions, pit filling, accumulation, river sources
//	internal/grid         - shared row-major grid buffers
//	internal/noise        - seeded coherent noise with seam blending
//	internal/logging      - structured, run-scoped logging
//	internal/config       - TOML-based default parameter loading
//
// See cmd/worldgen for a minimal CLI consumer.
package worldgen
