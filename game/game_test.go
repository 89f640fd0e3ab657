package game

import (
	"bytes"
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adil14788/Epic-game/artifact"
	"github.com/adil14788/Epic-game/chain"
	"github.com/adil14788/Epic-game/chain/chaintest"
	"github.com/adil14788/Epic-game/log"
	"github.com/adil14788/Epic-game/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const devKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func setup(t *testing.T) (*chaintest.Backend, *chain.Transactor, *artifact.Artifact) {
	t.Helper()

	b := chaintest.NewBackend(31337)
	key, err := wallet.ParsePrivateKey(devKey)
	require.NoError(t, err)

	tr := chain.NewTransactor(b, wallet.NewLocalSigner(key, b.ChainIDValue), chain.Options{
		ReceiptTimeout: time.Second,
	}, log.NewLoggerTo(&bytes.Buffer{}, "error"))

	a, err := artifact.Load("../testdata/artifacts", "MyEpicGame")
	require.NoError(t, err)
	return b, tr, a
}

func TestDeploy_EncodesDefaultRoster(t *testing.T) {
	b, tr, a := setup(t)

	g, tx, err := Deploy(context.Background(), tr, a, DefaultRoster())
	require.NoError(t, err)

	receipt, err := g.Wait(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, g.Address, receipt.ContractAddress)

	sent := b.SentTxs()
	require.Len(t, sent, 1)

	code, err := a.BytecodeBytes()
	require.NoError(t, err)
	args, err := a.ABI().Constructor.Inputs.Unpack(sent[0].Data()[len(code):])
	require.NoError(t, err)

	require.Len(t, args, 8)
	assert.Equal(t, []string{"Tony", "Spidy", "Hulk"}, args[0])
	assert.Equal(t, []int64{300, 250, 450}, int64s(args[2].([]*big.Int)))
	assert.Equal(t, []int64{100, 50, 150}, int64s(args[3].([]*big.Int)))
	assert.Equal(t, "Thanos", args[4])
	assert.Equal(t, "https://bit.ly/3y6F4NT", args[5])
	assert.Equal(t, int64(10000), args[6].(*big.Int).Int64())
	assert.Equal(t, int64(50), args[7].(*big.Int).Int64())
}

func int64s(vs []*big.Int) []int64 {
	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = v.Int64()
	}
	return out
}

func TestDeploy_RejectsInvalidRoster(t *testing.T) {
	b, tr, a := setup(t)

	r := DefaultRoster()
	r.HP = r.HP[:1]

	_, _, err := Deploy(context.Background(), tr, a, r)
	assert.ErrorIs(t, err, ErrInvalidRoster)
	assert.Empty(t, b.SentTxs())
}

func TestDeploy_RejectsForeignArtifact(t *testing.T) {
	_, tr, _ := setup(t)

	dir := t.TempDir()
	doc := `{"contractName":"Other","abi":[],"bytecode":"0x6001"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Other.json"), []byte(doc), 0o644))
	other, err := artifact.Load(dir, "Other")
	require.NoError(t, err)

	_, _, err = Deploy(context.Background(), tr, other, DefaultRoster())
	assert.ErrorIs(t, err, ErrMissingMethod)
}

func TestMintAndAttack(t *testing.T) {
	b, tr, a := setup(t)
	g, err := Bind(common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), a, tr)
	require.NoError(t, err)

	mint, err := g.MintCharacterNFT(context.Background(), 2)
	require.NoError(t, err)
	_, err = g.Wait(context.Background(), mint)
	require.NoError(t, err)

	attack, err := g.AttackBoss(context.Background())
	require.NoError(t, err)
	_, err = g.Wait(context.Background(), attack)
	require.NoError(t, err)

	sent := b.SentTxs()
	require.Len(t, sent, 2)
	assert.Equal(t, g.Address, *sent[0].To())
	assert.Equal(t, a.ABI().Methods[MethodMint].ID, sent[0].Data()[:4])
	assert.Equal(t, uint64(2), new(big.Int).SetBytes(sent[0].Data()[4:]).Uint64())
	assert.Equal(t, a.ABI().Methods[MethodAttack].ID, sent[1].Data())
}

func TestTokenURI(t *testing.T) {
	b, tr, a := setup(t)
	g, err := Bind(common.HexToAddress("0x01"), a, tr)
	require.NoError(t, err)

	ret, err := a.ABI().Methods[MethodTokenURI].Outputs.Pack("data:application/json;base64,eyJuYW1lIjoiVG9ueSJ9")
	require.NoError(t, err)
	b.CallResult = ret

	uri, err := g.TokenURI(context.Background(), big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "data:application/json;base64,eyJuYW1lIjoiVG9ueSJ9", uri)
}

func TestTokenURI_EmptyReturn(t *testing.T) {
	_, tr, a := setup(t)
	g, err := Bind(common.HexToAddress("0x01"), a, tr)
	require.NoError(t, err)

	_, err = g.TokenURI(context.Background(), big.NewInt(1))
	assert.Error(t, err)
}
