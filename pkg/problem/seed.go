package problem

import (
	"crypto/sha256"
	"encoding/binary"
)

// DeriveSeed derives a stage-specific search seed from a master seed and a
// stage name, so different solver stages (e.g. independent portfolio
// workers) get isolated but reproducible random sequences from one master
// seed. Same scheme as the teacher pipeline's per-stage RNG derivation:
// SHA-256(masterSeed || stageName), first 8 bytes as a uint64.
func DeriveSeed(masterSeed uint64, stageName string) uint64 {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])
	h.Write([]byte(stageName))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
