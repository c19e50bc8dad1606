package contract

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Artifact is a compiled contract ready for deployment.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// LoadArtifact reads a Hardhat or Foundry artifact JSON file. It fails when
// the file has no "abi" array or no deployable bytecode.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read artifact file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("artifact file is empty: %s", path)
	}
	return ParseArtifact(data)
}

// ParseArtifact decodes artifact JSON.
func ParseArtifact(data []byte) (*Artifact, error) {
	var raw struct {
		ContractName string          `json:"contractName"`
		ABI          json.RawMessage `json:"abi"`
		Bytecode     json.RawMessage `json:"bytecode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid artifact JSON: %w", err)
	}

	trimmed := bytes.TrimSpace(raw.ABI)
	if len(trimmed) < 2 || trimmed[0] != '[' {
		return nil, fmt.Errorf("artifact has no \"abi\" array")
	}
	parsed, err := abi.JSON(bytes.NewReader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("parsing artifact ABI: %w", err)
	}

	if len(raw.Bytecode) == 0 {
		return nil, fmt.Errorf("artifact has no bytecode; interfaces and abstract contracts cannot be deployed")
	}
	bcHex, err := extractBytecodeHex(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("extracting bytecode from artifact: %w", err)
	}
	bcHex = strings.TrimPrefix(bcHex, "0x")
	if bcHex == "" {
		return nil, fmt.Errorf("artifact bytecode is empty; interfaces and abstract contracts cannot be deployed")
	}
	code, err := hex.DecodeString(bcHex)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode hex in artifact: %w", err)
	}

	return &Artifact{Name: raw.ContractName, ABI: parsed, Bytecode: code}, nil
}

// extractBytecodeHex handles the two common artifact formats:
//   - Hardhat:  "bytecode": "0x608060..."
//   - Foundry:  "bytecode": {"object": "0x608060..."}
func extractBytecodeHex(raw json.RawMessage) (string, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str), nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Object != "" {
		return strings.TrimSpace(obj.Object), nil
	}

	return "", fmt.Errorf("bytecode field is neither a hex string nor a {\"object\":\"0x...\"} object")
}
