package contract

import (
	"encoding/hex"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/crypto/sha3"
)

// Signature describes one ABI function for display.
type Signature struct {
	Name       string
	Sig        string // canonical, e.g. "presaleMint()"
	Selector   string // 0x-prefixed 4 bytes
	Mutability string
	Outputs    []string
}

// IsRead reports whether the function is view or pure.
func (s Signature) IsRead() bool {
	return s.Mutability == "view" || s.Mutability == "pure"
}

// Signatures lists parsed's functions sorted reads first, then by name.
func Signatures(parsed abi.ABI) []Signature {
	out := make([]Signature, 0, len(parsed.Methods))
	for _, m := range parsed.Methods {
		outputs := make([]string, len(m.Outputs))
		for i, o := range m.Outputs {
			outputs[i] = o.Type.String()
		}
		out = append(out, Signature{
			Name:       m.RawName,
			Sig:        m.Sig,
			Selector:   Selector(m.Sig),
			Mutability: m.StateMutability,
			Outputs:    outputs,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsRead() != out[j].IsRead() {
			return out[i].IsRead()
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Selector returns the 4-byte function selector for a canonical signature.
func Selector(sig string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}
