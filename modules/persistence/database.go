package persistence

import (
	"path/filepath"
	"time"

	"github.com/lkarlslund/logonhound/modules/cli"
	"github.com/lkarlslund/logonhound/modules/ui"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
	"go.etcd.io/bbolt"
)

const DatabaseName = "sids.bbolt"

var (
	datastore *bbolt.DB
	mh        codec.JsonHandle

	ErrEmptyID     = errors.New("empty ID")
	ErrKeyNotFound = errors.New("key not found")
)

// Open the bolt database, waiting a little if another process has it locked
func Open(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0666, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening database %v", path)
	}
	return db, nil
}

func getDB() (*bbolt.DB, error) {
	if datastore != nil {
		return datastore, nil
	}
	path := filepath.Join(*cli.Datapath, DatabaseName)
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	ui.Debug().Msgf("Opened SID store %v", path)
	datastore = db
	return datastore, nil
}

func Close() error {
	if datastore == nil {
		return nil
	}
	err := datastore.Close()
	datastore = nil
	return err
}

// Objects must be able to return a unique key
type Identifiable interface {
	ID() string
}

type Store[i Identifiable] struct {
	db         *bbolt.DB
	bucketname []byte
}

// GetStorage returns a store backed by the database in the datapath
func GetStorage[i Identifiable](bucketname string) (Store[i], error) {
	db, err := getDB()
	if err != nil {
		return Store[i]{}, err
	}
	return NewStore[i](db, bucketname), nil
}

func NewStore[i Identifiable](db *bbolt.DB, bucketname string) Store[i] {
	return Store[i]{
		db:         db,
		bucketname: []byte(bucketname),
	}
}

func (s Store[p]) Get(id string) (*p, bool) {
	var result p
	var data []byte
	s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucketname)
		if b == nil {
			return nil
		}
		// only valid inside the transaction
		if v := b.Get([]byte(id)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if data == nil {
		return nil, false
	}
	if err := codec.NewDecoderBytes(data, &mh).Decode(&result); err != nil {
		ui.Warn().Msgf("Could not decode %v from %s: %v", id, s.bucketname, err)
		return nil, false
	}
	return &result, true
}

// PutMany stores all items in one transaction
func (s Store[p]) PutMany(items []p) error {
	encoded := make([][]byte, len(items))
	for n, item := range items {
		if item.ID() == "" {
			return ErrEmptyID
		}
		if err := codec.NewEncoderBytes(&encoded[n], &mh).Encode(item); err != nil {
			return errors.Wrapf(err, "encoding %v", item.ID())
		}
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucketname)
		if err != nil {
			return err
		}
		for n, item := range items {
			if err = b.Put([]byte(item.ID()), encoded[n]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s Store[p]) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucketname)
		if b == nil || b.Get([]byte(id)) == nil {
			return errors.Wrapf(ErrKeyNotFound, "%v in %s", id, s.bucketname)
		}
		return b.Delete([]byte(id))
	})
}

// Clear removes every item in the bucket
func (s Store[p]) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(s.bucketname) == nil {
			return nil
		}
		return tx.DeleteBucket(s.bucketname)
	})
}

// List returns all items ordered by ID
func (s Store[p]) List() ([]p, error) {
	var result []p
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucketname)
		if b == nil {
			return nil
		}
		stats := b.Stats()
		result = make([]p, 0, stats.KeyN)
		return b.ForEach(func(k, v []byte) error {
			var data p
			if err := codec.NewDecoderBytes(v, &mh).Decode(&data); err != nil {
				return errors.Wrapf(err, "decoding %s", k)
			}
			result = append(result, data)
			return nil
		})
	})
	return result, err
}
