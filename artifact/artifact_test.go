package artifact

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../testdata/artifacts"

func TestLoad_HardhatLayout(t *testing.T) {
	a, err := Load(fixtureDir, "MyEpicGame")
	require.NoError(t, err)

	assert.Equal(t, "MyEpicGame", a.ContractName)
	assert.Contains(t, a.ABI().Methods, "mintCharacterNFT")
	assert.Contains(t, a.ABI().Methods, "attackBoss")
	assert.Len(t, a.ABI().Constructor.Inputs, 8)
}

func TestLoad_FlatLayoutAndObjectBytecode(t *testing.T) {
	dir := t.TempDir()
	doc := `{"abi":[],"bytecode":{"object":"0x6001"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Tiny.json"), []byte(doc), 0o644))

	a, err := Load(dir, "Tiny")
	require.NoError(t, err)
	assert.Equal(t, "Tiny", a.ContractName)

	code, err := a.BytecodeBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x01}, code)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir(), "MyEpicGame")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestParse_BadABI(t *testing.T) {
	_, err := Parse([]byte(`{"abi":{"oops":1},"bytecode":"0x00"}`))
	assert.Error(t, err)
}

func TestBytecodeBytes_Empty(t *testing.T) {
	a, err := Parse([]byte(`{"abi":[],"bytecode":"0x"}`))
	require.NoError(t, err)

	_, err = a.BytecodeBytes()
	assert.ErrorIs(t, err, ErrEmptyBytecode)
}

func TestDeployData_AppendsConstructorArgs(t *testing.T) {
	a, err := Load(fixtureDir, "MyEpicGame")
	require.NoError(t, err)

	code, err := a.BytecodeBytes()
	require.NoError(t, err)

	data, err := a.DeployData(
		[]string{"Tony"},
		[]string{"https://bit.ly/3uI2t7Z"},
		[]*big.Int{big.NewInt(300)},
		[]*big.Int{big.NewInt(100)},
		"Thanos",
		"https://bit.ly/3y6F4NT",
		big.NewInt(10000),
		big.NewInt(50),
	)
	require.NoError(t, err)

	assert.Equal(t, code, data[:len(code)])
	assert.Greater(t, len(data), len(code))
	assert.Zero(t, (len(data)-len(code))%32)
}

func TestDeployData_WrongArgs(t *testing.T) {
	a, err := Load(fixtureDir, "MyEpicGame")
	require.NoError(t, err)

	_, err = a.DeployData("just one")
	assert.Error(t, err)
}

func TestPackUnpack(t *testing.T) {
	a, err := Load(fixtureDir, "MyEpicGame")
	require.NoError(t, err)

	data, err := a.Pack("mintCharacterNFT", big.NewInt(0))
	require.NoError(t, err)
	assert.Len(t, data, 4+32)
	assert.Equal(t, a.ABI().Methods["mintCharacterNFT"].ID, data[:4])

	ret, err := a.ABI().Methods["tokenURI"].Outputs.Pack("data:application/json;base64,e30=")
	require.NoError(t, err)

	out, err := a.Unpack("tokenURI", ret)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "data:application/json;base64,e30=", out[0])

	_, err = a.Pack("noSuchMethod")
	assert.Error(t, err)
}
