package rpc

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adil14788/Epic-game/state"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListDeployments(network string) ([]*state.Deployment, error) {
	args := m.Called(network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*state.Deployment), args.Error(1)
}

func TestHandleDeployments(t *testing.T) {
	store := new(MockLister)
	store.On("ListDeployments", "localhost").Return([]*state.Deployment{
		{Network: "localhost", Contract: common.HexToAddress("0x01"), CreatedAt: time.Now()},
	}, nil)

	rec := httptest.NewRecorder()
	handleDeployments(store)(rec, httptest.NewRequest(http.MethodGet, "/deployments?network=localhost", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success     bool                `json:"success"`
		Deployments []*state.Deployment `json:"deployments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Deployments, 1)
	assert.Equal(t, common.HexToAddress("0x01"), body.Deployments[0].Contract)
	store.AssertExpectations(t)
}

func TestHandleDeployments_EmptyIsArray(t *testing.T) {
	store := new(MockLister)
	store.On("ListDeployments", "").Return(nil, nil)

	rec := httptest.NewRecorder()
	handleDeployments(store)(rec, httptest.NewRequest(http.MethodGet, "/deployments", nil))

	assert.Contains(t, rec.Body.String(), `"deployments":[]`)
}

func TestHandleDeployments_Errors(t *testing.T) {
	store := new(MockLister)
	store.On("ListDeployments", "").Return(nil, errors.New("closed"))

	rec := httptest.NewRecorder()
	handleDeployments(store)(rec, httptest.NewRequest(http.MethodGet, "/deployments", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	handleDeployments(store)(rec, httptest.NewRequest(http.MethodPost, "/deployments", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
