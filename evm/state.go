// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package evm

//go:generate mockgen -source state.go -destination state_mock.go -package evm

// StateManager is an interface to access and manipulate the state of the
// chain as observed by a single transaction. The state is a collection of
// accounts, each with a balance, a nonce, optional code, and storage.
// Mutations performed through a StateManager become visible to subsequent
// reads within the same transaction; snapshot and revert discipline is the
// concern of the enclosing transaction executor, not of this interface.
type StateManager interface {
	AccountExists(Address) bool

	// AccountIsEmpty returns true if the account has zero balance, zero
	// nonce, and no code. Non-existing accounts are empty.
	AccountIsEmpty(Address) bool

	// GetAccount returns a snapshot view of the account behind the given
	// address. The view is a copy and does not track later mutations.
	GetAccount(Address) Account

	GetBalance(Address) Value
	SetBalance(Address, Value)

	GetNonce(Address) uint64
	SetNonce(Address, uint64)

	GetCode(Address) Code
	GetCodeSize(Address) int
	SetCode(Address, Code)

	GetStorage(Address, Key) Word
	SetStorage(Address, Key, Word)

	// GetBlockHash returns the hash of the block with the given number.
	GetBlockHash(number int64) Hash

	// CacheGet and CachePut maintain the per-transaction account cache
	// used for intra-frame coherence. A frame persists its current
	// contract view with CachePut before spawning a child so the child
	// observes the up-to-date account.
	CacheGet(Address) (Account, bool)
	CachePut(Address, Account)
}

// Account is the cached view of an account as held by a running frame.
type Account struct {
	Balance Value
	Nonce   uint64
	Exists  bool
}
