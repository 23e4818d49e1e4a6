package admission

import (
	community "github.com/iov-one/community"
	"github.com/iov-one/community/errors"
)

const optKey = "admission"

// Genesis is the content of the "admission" key of the genesis app state.
type Genesis struct {
	Threshold uint32              `json:"threshold"`
	Members   []community.Address `json:"members"`
	// Registry is optional. When missing, the registry address is derived
	// from the chain ID.
	Registry community.Address `json:"registry,omitempty"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ community.Initializer = (*Initializer)(nil)

// FromGenesis configures the registry and stores the initial members.
func (*Initializer) FromGenesis(opts community.Options, params community.GenesisParams, kv community.KVStore) error {
	var g Genesis
	if err := opts.ReadOptions(optKey, &g); err != nil {
		return errors.Wrap(err, "cannot load admission")
	}
	registry := g.Registry
	if len(registry) == 0 {
		if params.ChainID == "" {
			return errors.Wrap(errors.ErrState, "registry address requires a chain ID")
		}
		registry = RegistryAddress(params.ChainID)
	}
	if err := NewRegistry().Initialize(kv, g.Threshold, g.Members, registry); err != nil {
		return errors.Wrap(err, "cannot initialize admission")
	}
	return nil
}
