// Package artifact loads compiled contract artifacts (Hardhat or Foundry
// output) and encodes calls against their ABI.
package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrEmptyBytecode    = errors.New("artifact has empty bytecode")
)

// Artifact is a compiled contract: its ABI and creation bytecode.
type Artifact struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName,omitempty"`
	RawABI       json.RawMessage `json:"abi"`
	Bytecode     Bytecode        `json:"bytecode"`

	parsed abi.ABI
}

// Bytecode accepts both "0x60..." and {"object": "0x60..."}.
type Bytecode struct {
	hex string
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.hex = s
		return nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		b.hex = obj.Object
		return nil
	}

	return fmt.Errorf("bytecode must be a string or object with 'object' field")
}

func (b Bytecode) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.hex)
}

func (b Bytecode) String() string {
	return b.hex
}

// Parse decodes an artifact document and its ABI.
func Parse(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}

	parsed, err := abi.JSON(bytes.NewReader(a.RawABI))
	if err != nil {
		return nil, fmt.Errorf("parse ABI: %w", err)
	}
	a.parsed = parsed
	return &a, nil
}

// Load finds the artifact for name under dir. Both the Hardhat layout
// (<dir>/<name>.sol/<name>.json) and a flat <dir>/<name>.json are tried.
func Load(dir, name string) (*Artifact, error) {
	candidates := []string{
		filepath.Join(dir, name+".sol", name+".json"),
		filepath.Join(dir, name+".json"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		a, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if a.ContractName == "" {
			a.ContractName = name
		}
		return a, nil
	}

	return nil, fmt.Errorf("%w: %s in %s", ErrArtifactNotFound, name, dir)
}

func (a *Artifact) ABI() abi.ABI {
	return a.parsed
}

// BytecodeBytes returns the creation code.
func (a *Artifact) BytecodeBytes() ([]byte, error) {
	code := strings.TrimSpace(a.Bytecode.hex)
	if code == "" || code == "0x" {
		return nil, ErrEmptyBytecode
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	return hexutil.Decode(code)
}

// DeployData is the creation code followed by the packed constructor args.
func (a *Artifact) DeployData(args ...interface{}) ([]byte, error) {
	code, err := a.BytecodeBytes()
	if err != nil {
		return nil, err
	}

	packed, err := a.parsed.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("pack constructor args: %w", err)
	}

	data := make([]byte, 0, len(code)+len(packed))
	data = append(data, code...)
	return append(data, packed...), nil
}

// Pack encodes a call to method.
func (a *Artifact) Pack(method string, args ...interface{}) ([]byte, error) {
	packed, err := a.parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return packed, nil
}

// Unpack decodes the return data of method.
func (a *Artifact) Unpack(method string, data []byte) ([]interface{}, error) {
	out, err := a.parsed.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return out, nil
}
