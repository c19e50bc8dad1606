package contract

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrABIShape is returned when an ABI lacks part of the call surface a
// facade depends on.
var ErrABIShape = errors.New("ABI does not match the expected call surface")

// BuiltinKind is a contract type whose ABI is embedded in the binary. Each
// kind registers itself from init() in its own <name>_abi.go file.
type BuiltinKind struct {
	ID          string // machine key, e.g. "cryptodevs"
	Name        string // human label
	Description string
	JSON        string
	Surface     []Method // calls the facade makes
}

// Method is one function a facade calls, described by its canonical
// signature and result types.
type Method struct {
	Sig     string   // e.g. "presaleEnded()"
	Outputs []string // e.g. ["uint256"]
	Payable bool
}

var builtinRegistry = map[string]BuiltinKind{}

// RegisterBuiltin adds a built-in ABI to the global registry.
func RegisterBuiltin(b BuiltinKind) {
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (BuiltinKind, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Parse decodes the embedded ABI JSON.
func (b BuiltinKind) Parse() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(b.JSON))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing %s ABI: %w", b.ID, err)
	}
	return parsed, nil
}

// MustParse is Parse for ABIs known to be valid at build time.
func (b BuiltinKind) MustParse() abi.ABI {
	parsed, err := b.Parse()
	if err != nil {
		panic(err)
	}
	return parsed
}

// ValidateShape checks that parsed declares every method in surface with the
// same result types and payability. It does not check the deployed code.
func ValidateShape(parsed abi.ABI, surface []Method) error {
	var missing []string
	for _, want := range surface {
		if !hasMethod(parsed, want) {
			missing = append(missing, want.Sig)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing or mismatched %s", ErrABIShape, strings.Join(missing, ", "))
	}
	return nil
}

func hasMethod(parsed abi.ABI, want Method) bool {
	for _, m := range parsed.Methods {
		if m.Sig != want.Sig {
			continue
		}
		if m.IsPayable() != want.Payable || len(m.Outputs) != len(want.Outputs) {
			return false
		}
		for i, out := range m.Outputs {
			if out.Type.String() != want.Outputs[i] {
				return false
			}
		}
		return true
	}
	return false
}
