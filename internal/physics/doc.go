// Package physics implements the closed-form plasma generator model.
//
// The model is a fixed dependency chain of algebraic expressions, not a
// field solver: one call to [Evaluate] maps a [Parameters] record to a
// complete [Results] record, with no state carried between calls.
//
//   - [Plasma]: the plasma sub-model (frequency, Debye length, beta,
//     conductivity, magnetic pressure)
//   - [Evaluate]: the full electromagnetic and astronomical coupling
//     chain, built on top of [Plasma]
//   - [Alignment]: the cyclic lunar-phase coupling factor
//
// # Units
//
// All internal math is SI. The [Results] record is the display boundary:
// Debye length is reported in µm, plasma frequency in GHz, emergent
// gravity in multiples of G and effective density scaled by 1e-15.
// Downstream validity thresholds are defined against these scaled values.
//
// # Purity
//
// Evaluate and Plasma are pure and safe for concurrent use. They perform
// no clamping and no validation; surfaces feeding the model are expected
// to apply [Parameters.Clamp] first.
package physics
