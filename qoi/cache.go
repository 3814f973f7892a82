package qoi

// colorCache is the 64-slot direct-mapped table of recently seen colors.
// Encoder and decoder each own one per call, seeded to the zero color, and
// mutate it in lockstep: every pixel emitted or consumed through a non-run
// opcode overwrites its own hash slot. Collisions silently overwrite.
type colorCache [64]Color

// hashIndex maps a color to its cache slot. The channel multipliers are part
// of the wire contract, not a tunable hash: both sides must compute exactly
// this function or index opcodes stop resolving to the same colors.
// Byte arithmetic wraps mod 256, which is a multiple of 64, so the wrapped
// sum reduces to the same slot as the exact sum.
func hashIndex(c Color) int {
	return int((c.R*3 + c.G*5 + c.B*7 + c.A*11) % 64)
}
