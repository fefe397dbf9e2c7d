/*
Package pebbledb provides a CommitKVStore on top of a pebble LSM database.

Uncommitted writes are kept in a btree cache. Commit flushes them together
with the new version and its hash in one synced pebble batch, so a crash
leaves either the previous or the next version on disk.
*/
package pebbledb

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"github.com/cockroachdb/pebble"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/store"
)

var (
	// all application keys live under this prefix, the rest is metadata
	dataPrefix = []byte("d:")
	latestKey  = []byte("m:latest")
)

// CommitStore persists versioned state in pebble.
type CommitStore struct {
	db      *pebble.DB
	latest  store.CommitID
	working store.KVCacheWrap
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens (or creates) the database in dir.
func NewCommitStore(dir string) (*CommitStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open pebble in %q: %s", dir, err)
	}
	s := &CommitStore{db: db}
	s.reset()
	return s, nil
}

// Close flushes and releases the database.
func (s *CommitStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Get returns the value at last committed state.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	return s.Adapter().Get(key)
}

// CacheWrap returns a cache over the uncommitted working state.
// Writing it makes the changes visible to the next Commit.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.working.CacheWrap()
}

// Adapter exposes the committed state as a KVStore. Writes through the
// adapter go straight to disk and bypass versioning.
func (s *CommitStore) Adapter() store.CacheableKVStore {
	return adapter{db: s.db}
}

// Commit persists all written cache wraps as the next version.
func (s *CommitStore) Commit() (store.CommitID, error) {
	if err := s.working.Write(); err != nil {
		s.reset()
		return store.CommitID{}, err
	}
	s.reset()
	return s.latest, nil
}

// LoadLatestVersion reads the last committed version from disk.
func (s *CommitStore) LoadLatestVersion() error {
	raw, closer, err := s.db.Get(latestKey)
	switch {
	case err == pebble.ErrNotFound:
		s.latest = store.CommitID{}
		return nil
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer closer.Close()

	id, err := decodeCommitID(raw)
	if err != nil {
		return err
	}
	s.latest = id
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return s.latest, nil
}

func (s *CommitStore) reset() {
	b := &commitBatch{
		store: s,
		batch: s.db.NewBatch(),
		ops:   sha256.New(),
	}
	s.working = store.NewBTreeCacheWrap(adapter{db: s.db}, b, nil)
}

// seal stores the next version and its hash inside the batch and
// commits it.
func (s *CommitStore) seal(b *commitBatch) error {
	next := store.CommitID{
		Version: s.latest.Version + 1,
		Hash:    chainHash(s.latest.Hash, s.latest.Version+1, b.ops.Sum(nil)),
	}
	if err := b.batch.Set(latestKey, encodeCommitID(next), nil); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := b.batch.Commit(pebble.Sync); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.latest = next
	return nil
}

// commitBatch collects the working writes into a pebble batch and
// digests them in order.
type commitBatch struct {
	store *CommitStore
	batch *pebble.Batch
	ops   hash.Hash
}

var _ store.Batch = (*commitBatch)(nil)

func (b *commitBatch) Set(key, value []byte) error {
	writeDigest(b.ops, 's', key, value)
	if err := b.batch.Set(dataKey(key), value, nil); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (b *commitBatch) Delete(key []byte) error {
	writeDigest(b.ops, 'd', key, nil)
	if err := b.batch.Delete(dataKey(key), nil); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (b *commitBatch) Write() error {
	defer b.batch.Close()
	return b.store.seal(b)
}

func writeDigest(h hash.Hash, kind byte, key, value []byte) {
	var n [8]byte
	h.Write([]byte{kind})
	binary.BigEndian.PutUint64(n[:], uint64(len(key)))
	h.Write(n[:])
	h.Write(key)
	binary.BigEndian.PutUint64(n[:], uint64(len(value)))
	h.Write(n[:])
	h.Write(value)
}

func chainHash(prev []byte, version int64, ops []byte) []byte {
	var v [8]byte
	binary.BigEndian.PutUint64(v[:], uint64(version))
	h := sha256.New()
	h.Write(prev)
	h.Write(v[:])
	h.Write(ops)
	return h.Sum(nil)
}

// encoding: [version:8][hash]
func encodeCommitID(id store.CommitID) []byte {
	buf := make([]byte, 8+len(id.Hash))
	binary.BigEndian.PutUint64(buf[:8], uint64(id.Version))
	copy(buf[8:], id.Hash)
	return buf
}

func decodeCommitID(raw []byte) (store.CommitID, error) {
	if len(raw) < 8 {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "invalid commit info length %d", len(raw))
	}
	return store.CommitID{
		Version: int64(binary.BigEndian.Uint64(raw[:8])),
		Hash:    append([]byte(nil), raw[8:]...),
	}, nil
}

func dataKey(key []byte) []byte {
	return append(append([]byte(nil), dataPrefix...), key...)
}

// prefixEnd returns the first key after every key with the given prefix
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// adapter reads committed data straight from pebble.
type adapter struct {
	db *pebble.DB
}

var _ store.CacheableKVStore = adapter{}

func (a adapter) Get(key []byte) ([]byte, error) {
	val, closer, err := a.db.Get(dataKey(key))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer closer.Close()
	// val is only valid until closer is closed
	return append([]byte(nil), val...), nil
}

func (a adapter) Has(key []byte) (bool, error) {
	val, err := a.Get(key)
	return val != nil, err
}

func (a adapter) Set(key, value []byte) error {
	if err := a.db.Set(dataKey(key), value, pebble.Sync); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (a adapter) Delete(key []byte) error {
	if err := a.db.Delete(dataKey(key), pebble.Sync); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// NewBatch writes atomically through a pebble batch, but without
// creating a new version.
func (a adapter) NewBatch() store.Batch {
	return &rawBatch{db: a.db, batch: a.db.NewBatch()}
}

func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return a.iterate(start, end, true)
}

func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return a.iterate(start, end, false)
}

func (a adapter) iterate(start, end []byte, ascending bool) (store.Iterator, error) {
	opts := &pebble.IterOptions{
		LowerBound: dataKey(start),
		UpperBound: prefixEnd(dataPrefix),
	}
	if end != nil {
		opts.UpperBound = dataKey(end)
	}
	iter, err := a.db.NewIter(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer iter.Close()

	var res []store.Model
	valid := iter.First
	step := iter.Next
	if !ascending {
		valid, step = iter.Last, iter.Prev
	}
	for ok := valid(); ok; ok = step() {
		key := bytes.TrimPrefix(iter.Key(), dataPrefix)
		res = append(res, store.Pair(
			append([]byte(nil), key...),
			append([]byte(nil), iter.Value()...),
		))
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.NewSliceIterator(res), nil
}

type rawBatch struct {
	db    *pebble.DB
	batch *pebble.Batch
}

func (b *rawBatch) Set(key, value []byte) error {
	if err := b.batch.Set(dataKey(key), value, nil); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (b *rawBatch) Delete(key []byte) error {
	if err := b.batch.Delete(dataKey(key), nil); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Write commits all ops and starts over with an empty batch.
func (b *rawBatch) Write() error {
	err := b.batch.Commit(pebble.Sync)
	b.batch.Close()
	b.batch = b.db.NewBatch()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
