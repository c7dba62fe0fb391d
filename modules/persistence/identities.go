package persistence

import (
	"io"
	"maps"
	"slices"

	"github.com/lkarlslund/logonhound/modules/tables"
	"github.com/lkarlslund/logonhound/modules/ui"
	"github.com/lkarlslund/logonhound/modules/util"
	"github.com/pkg/errors"
)

const IdentityBucket = "identities"

// Identity is one row of the computer SID index
type Identity struct {
	Host string `json:"host"`
	SID  string `json:"sid"`
}

func (i Identity) ID() string {
	return i.Host
}

func IdentityStore() (Store[Identity], error) {
	return GetStorage[Identity](IdentityBucket)
}

// ImportIdentities stores the host to SID rows of t, resolving duplicates with the mergers policy.
// With replace set the previous contents of the store are dropped first.
func ImportIdentities(store Store[Identity], t *tables.Table, m tables.Merger, replace bool) (int, error) {
	index, err := m.IdentityIndex(t)
	if err != nil {
		return 0, err
	}

	identities := make([]Identity, 0, len(index))
	for _, host := range slices.Sorted(maps.Keys(index)) {
		identities = append(identities, Identity{Host: host, SID: index[host]})
	}

	if replace {
		if err = store.Clear(); err != nil {
			return 0, err
		}
	}
	if err = store.PutMany(identities); err != nil {
		return 0, err
	}
	ui.Info().Msgf("Stored %v computer SIDs from %v", len(identities), t.Name)
	return len(identities), nil
}

// LookupIdentities writes the stored entries for hosts to w as JSON, failing if one is unknown
func LookupIdentities(store Store[Identity], hosts []string, w io.Writer) error {
	found := make([]Identity, 0, len(hosts))
	for _, host := range hosts {
		identity, ok := store.Get(host)
		if !ok {
			return errors.Wrapf(ErrKeyNotFound, "no SID stored for %v", host)
		}
		found = append(found, *identity)
	}
	return util.WriteJSON(w, found)
}

// DeleteIdentities removes hosts from the store, stopping at the first one not there
func DeleteIdentities(store Store[Identity], hosts []string) error {
	for _, host := range hosts {
		if err := store.Delete(host); err != nil {
			return err
		}
		ui.Info().Msgf("Removed %v from the SID store", host)
	}
	return nil
}

// StoreLoader serves the stored SID index as if it was loaded from a CSV file
type StoreLoader struct {
	Store   Store[Identity]
	Columns tables.Columns
}

func (sl StoreLoader) Name() string {
	return "SID store"
}

func (sl StoreLoader) Load() (*tables.Table, error) {
	identities, err := sl.Store.List()
	if err != nil {
		return nil, err
	}
	t := tables.NewTable(sl.Name(), sl.Columns.Host, sl.Columns.SID)
	for _, identity := range identities {
		t.Add(identity.Host, identity.SID)
	}
	ui.Debug().Msgf("Loaded %v computer SIDs from the SID store", t.Len())
	return t, nil
}
