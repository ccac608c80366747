package ports

// CodeGenerator produces opaque verification codes for recipient pickup.
// Isolated behind a port so tests can supply deterministic codes.
type CodeGenerator interface {
	Generate() (string, error)
}
