package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *StateDB {
	t.Helper()
	db, err := NewStateDB(filepath.Join(t.TempDir(), "deployments"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetDeployment(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := &Deployment{Network: "localhost", Contract: common.HexToAddress("0x01"), CreatedAt: base}
	second := &Deployment{
		Network:   "localhost",
		ChainID:   31337,
		Contract:  common.HexToAddress("0x02"),
		Steps:     []StepRecord{{Name: "deploy", TxHash: common.HexToHash("0xaa"), GasUsed: 7}},
		CreatedAt: base.Add(time.Minute),
	}
	require.NoError(t, db.SaveDeployment(first))
	require.NoError(t, db.SaveDeployment(second))

	got, err := db.GetDeployment("localhost")
	require.NoError(t, err)
	assert.Equal(t, second.Contract, got.Contract)
	assert.Equal(t, second.Steps, got.Steps)
	assert.True(t, second.CreatedAt.Equal(got.CreatedAt))
}

func TestGetDeployment_NotFound(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveDeployment(&Deployment{Network: "localhost-2", CreatedAt: time.Now()}))

	_, err := db.GetDeployment("localhost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDeployments(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	require.NoError(t, db.SaveDeployment(&Deployment{Network: "a", CreatedAt: now}))
	require.NoError(t, db.SaveDeployment(&Deployment{Network: "b", CreatedAt: now}))
	require.NoError(t, db.SaveDeployment(&Deployment{Network: "a", CreatedAt: now.Add(time.Second)}))

	all, err := db.ListDeployments("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyA, err := db.ListDeployments("a")
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	assert.True(t, onlyA[0].CreatedAt.Before(onlyA[1].CreatedAt))
}

func TestSaveDeployment_RequiresNetwork(t *testing.T) {
	db := openTestDB(t)
	assert.Error(t, db.SaveDeployment(&Deployment{}))
}
