package service

import (
	"hash/fnv"
	"sync"
)

const lockShards = 64

// keyLock serializes read-modify-write sequences per account by hashing the
// account key onto a fixed set of mutexes. Two concurrent logins for the same
// account therefore cannot interleave a token write with a stale computation.
type keyLock struct {
	shards [lockShards]sync.Mutex
}

// lock acquires the shard for key and returns its unlock func.
func (k *keyLock) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	m := &k.shards[h.Sum32()%lockShards]
	m.Lock()
	return m.Unlock
}
