// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package classic

import (
	"sync"

	"github.com/clevertechru/ethereumjs-vm/evm"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"
)

// Keccak256 computes the Keccak-256 hash of the given data.
func Keccak256(data []byte) evm.Hash {
	if len(data) == 0 {
		return emptyKeccak256Hash
	}
	hasher := keccakHasherPool.Get().(keccakHasher)
	hasher.Reset()
	hasher.Write(data)
	var res evm.Hash
	hasher.Read(res[:])
	keccakHasherPool.Put(hasher)
	return res
}

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

type keccakHasher interface {
	Reset()
	Write(in []byte) (int, error)
	Read(out []byte) (int, error)
}

var emptyKeccak256Hash = func() evm.Hash {
	hasher := sha3.NewLegacyKeccak256().(keccakHasher)
	var res evm.Hash
	hasher.Read(res[:])
	return res
}()

// sha3WordCache caches the hashes of single-word SHA3 inputs. Contracts
// keep re-hashing the same 32-byte values (storage keys, addresses, mapping
// slots), so a small LRU over those pays off; inputs of any other size are
// hashed directly without caching.
type sha3WordCache struct {
	words *lru.Cache[evm.Word, evm.Hash]
}

func newSha3WordCache(capacity int) *sha3WordCache {
	// lru.New only fails for non-positive capacities
	words, err := lru.New[evm.Word, evm.Hash](capacity)
	if err != nil {
		panic(err)
	}
	return &sha3WordCache{words: words}
}

// hash fetches a cached hash or computes the hash for the provided data.
func (c *sha3WordCache) hash(data []byte) evm.Hash {
	if len(data) != 32 {
		return Keccak256(data)
	}
	word := evm.Word(data)
	if hash, found := c.words.Get(word); found {
		return hash
	}
	hash := Keccak256(data)
	c.words.Add(word, hash)
	return hash
}
