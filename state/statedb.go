package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var ErrNotFound = errors.New("deployment not found")

const deploymentPrefix = "deployment/"

// StateDB is the LevelDB-backed deployment history.
type StateDB struct {
	db *leveldb.DB
}

// NewStateDB opens (or creates) the database at path.
func NewStateDB(path string) (*StateDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open deployment store %s: %w", path, err)
	}
	return &StateDB{db: db}, nil
}

func (s *StateDB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// deployment/<network>/<zero padded unix nanos> keeps each network's
// history ordered by time.
func deploymentKey(d *Deployment) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d", deploymentPrefix, d.Network, d.CreatedAt.UnixNano()))
}

func networkPrefix(network string) []byte {
	return []byte(deploymentPrefix + network + "/")
}

func (s *StateDB) SaveDeployment(d *Deployment) error {
	if d.Network == "" {
		return errors.New("deployment has no network")
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.db.Put(deploymentKey(d), data, nil)
}

// GetDeployment returns the most recent deployment on network.
func (s *StateDB) GetDeployment(network string) (*Deployment, error) {
	it := s.db.NewIterator(util.BytesPrefix(networkPrefix(network)), nil)
	defer it.Release()

	if !it.Last() {
		if err := it.Error(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, network)
	}

	var d Deployment
	if err := json.Unmarshal(it.Value(), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDeployments returns every recorded deployment, oldest first per
// network. An empty network lists all networks.
func (s *StateDB) ListDeployments(network string) ([]*Deployment, error) {
	prefix := []byte(deploymentPrefix)
	if network != "" {
		prefix = networkPrefix(network)
	}

	it := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()

	var out []*Deployment
	for it.Next() {
		var d Deployment
		if err := json.Unmarshal(it.Value(), &d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, it.Error()
}
