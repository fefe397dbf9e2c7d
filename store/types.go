package store

import "github.com/remitwise/splitledger"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = splitledger.ReadOnlyKVStore
type SetDeleter = splitledger.SetDeleter
type KVStore = splitledger.KVStore
type Batch = splitledger.Batch
type Iterator = splitledger.Iterator
type CacheableKVStore = splitledger.CacheableKVStore
type KVCacheWrap = splitledger.KVCacheWrap
type CommitKVStore = splitledger.CommitKVStore
type CommitID = splitledger.CommitID
type Model = splitledger.Model

// Pair constructs a model from a key-value pair
var Pair = splitledger.Pair
