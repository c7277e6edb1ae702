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
	"github.com/clevertechru/ethereumjs-vm/evm"
	lru "github.com/hashicorp/golang-lru/v2"
)

// jumpDests is a bit vector marking the code offsets holding a JUMPDEST
// instruction outside of PUSH immediate data. These are the only valid
// targets of JUMP and JUMPI instructions.
type jumpDests []byte

// analyze scans the code once and collects its valid jump destinations,
// skipping over the immediate bytes of PUSH instructions.
func analyze(code evm.Code) jumpDests {
	res := make(jumpDests, (len(code)+7)/8)
	for i := 0; i < len(code); i++ {
		op := OpCode(code[i])
		if op == JUMPDEST {
			res[i/8] |= 1 << (i % 8)
		} else if op.IsPush() {
			i += op.PushBytes()
		}
	}
	return res
}

// isValid returns true if the given code offset is a valid jump destination.
func (d jumpDests) isValid(pos uint64) bool {
	return pos/8 < uint64(len(d)) && d[pos/8]&(1<<(pos%8)) != 0
}

// AnalysisConfig contains a set of configuration options for the code
// analysis cache.
type AnalysisConfig struct {
	// CacheSize is the maximum size of the maintained analysis cache in
	// bytes. If set to 0, a default size is used. If negative, no cache is
	// used.
	CacheSize int
}

// analyzer produces the jump-destination sets of executed codes, caching
// results keyed by code hash since the same contracts are executed
// repeatedly within and across transactions.
type analyzer struct {
	cache *lru.Cache[evm.Hash, jumpDests]
}

// maxCachedCodeLength is the maximum length of a code in bytes for which
// analysis results are retained in the cache. The defined limit is the
// maximum size of codes stored on the chain; only initialization codes can
// be longer, and those are not re-executed.
const maxCachedCodeLength = 1<<14 + 1<<13 // = 24_576 bytes

func newAnalyzer(config AnalysisConfig) (*analyzer, error) {
	if config.CacheSize == 0 {
		config.CacheSize = 1 << 26 // = 64MiB
	}

	var cache *lru.Cache[evm.Hash, jumpDests]
	if config.CacheSize > 0 {
		var err error
		// one bit per code byte, rounded up to full entries
		capacity := config.CacheSize / (maxCachedCodeLength / 8)
		cache, err = lru.New[evm.Hash, jumpDests](capacity)
		if err != nil {
			return nil, err
		}
	}
	return &analyzer{cache: cache}, nil
}

// jumpDests obtains the valid jump destinations of the given code. If the
// provided code hash is not nil, it is assumed to be a valid hash of the
// code and is used to cache the analysis result.
func (a *analyzer) jumpDests(code evm.Code, codeHash *evm.Hash) jumpDests {
	if a.cache == nil || codeHash == nil {
		return analyze(code)
	}

	res, exists := a.cache.Get(*codeHash)
	if exists {
		return res
	}

	res = analyze(code)
	if len(code) > maxCachedCodeLength {
		return res
	}

	a.cache.Add(*codeHash, res)
	return res
}
