// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package processor

import (
	"maps"

	"github.com/clevertechru/ethereumjs-vm/evm"
)

// StateDB is an in-memory implementation of the evm.StateManager interface.
// It maintains the accounts of a transaction scope together with the
// per-transaction account cache and provides snapshot/revert support for
// the frame runner.
type StateDB struct {
	accounts    map[evm.Address]*accountState
	cache       map[evm.Address]evm.Account
	blockHashes map[int64]evm.Hash
	snapshots   []map[evm.Address]*accountState
}

type accountState struct {
	balance evm.Value
	nonce   uint64
	code    evm.Code
	storage map[evm.Key]evm.Word
}

func (a *accountState) clone() *accountState {
	return &accountState{
		balance: a.balance,
		nonce:   a.nonce,
		code:    a.code,
		storage: maps.Clone(a.storage),
	}
}

func NewStateDB() *StateDB {
	return &StateDB{
		accounts:    map[evm.Address]*accountState{},
		cache:       map[evm.Address]evm.Account{},
		blockHashes: map[int64]evm.Hash{},
	}
}

// get returns the state of an account, creating it on first mutation.
func (s *StateDB) get(addr evm.Address) *accountState {
	account, found := s.accounts[addr]
	if !found {
		account = &accountState{storage: map[evm.Key]evm.Word{}}
		s.accounts[addr] = account
	}
	return account
}

func (s *StateDB) AccountExists(addr evm.Address) bool {
	_, found := s.accounts[addr]
	return found
}

func (s *StateDB) AccountIsEmpty(addr evm.Address) bool {
	account, found := s.accounts[addr]
	if !found {
		return true
	}
	return account.balance.IsZero() && account.nonce == 0 && len(account.code) == 0
}

func (s *StateDB) GetAccount(addr evm.Address) evm.Account {
	account, found := s.accounts[addr]
	if !found {
		return evm.Account{}
	}
	return evm.Account{
		Balance: account.balance,
		Nonce:   account.nonce,
		Exists:  true,
	}
}

func (s *StateDB) GetBalance(addr evm.Address) evm.Value {
	if account, found := s.accounts[addr]; found {
		return account.balance
	}
	return evm.Value{}
}

func (s *StateDB) SetBalance(addr evm.Address, balance evm.Value) {
	s.get(addr).balance = balance
}

func (s *StateDB) GetNonce(addr evm.Address) uint64 {
	if account, found := s.accounts[addr]; found {
		return account.nonce
	}
	return 0
}

func (s *StateDB) SetNonce(addr evm.Address, nonce uint64) {
	s.get(addr).nonce = nonce
}

func (s *StateDB) GetCode(addr evm.Address) evm.Code {
	if account, found := s.accounts[addr]; found {
		return account.code
	}
	return nil
}

func (s *StateDB) GetCodeSize(addr evm.Address) int {
	return len(s.GetCode(addr))
}

func (s *StateDB) SetCode(addr evm.Address, code evm.Code) {
	s.get(addr).code = code
}

func (s *StateDB) GetStorage(addr evm.Address, key evm.Key) evm.Word {
	if account, found := s.accounts[addr]; found {
		return account.storage[key]
	}
	return evm.Word{}
}

func (s *StateDB) SetStorage(addr evm.Address, key evm.Key, value evm.Word) {
	s.get(addr).storage[key] = value
}

func (s *StateDB) GetBlockHash(number int64) evm.Hash {
	return s.blockHashes[number]
}

// SetBlockHash registers the hash of a historic block.
func (s *StateDB) SetBlockHash(number int64, hash evm.Hash) {
	s.blockHashes[number] = hash
}

func (s *StateDB) CacheGet(addr evm.Address) (evm.Account, bool) {
	account, found := s.cache[addr]
	return account, found
}

func (s *StateDB) CachePut(addr evm.Address, account evm.Account) {
	s.cache[addr] = account
	// write-through: the cache view is authoritative for balance and nonce
	state := s.get(addr)
	state.balance = account.Balance
	state.nonce = account.Nonce
}

// CreateSnapshot records the current state of all accounts and returns a
// handle to restore it later. Snapshots must be restored in reverse order of
// their creation; there is no separate release operation.
func (s *StateDB) CreateSnapshot() int {
	saved := make(map[evm.Address]*accountState, len(s.accounts))
	for addr, account := range s.accounts {
		saved[addr] = account.clone()
	}
	s.snapshots = append(s.snapshots, saved)
	return len(s.snapshots) - 1
}

// RestoreSnapshot rolls the accounts back to the given snapshot and discards
// it together with all later snapshots.
func (s *StateDB) RestoreSnapshot(snapshot int) {
	s.accounts = s.snapshots[snapshot]
	s.snapshots = s.snapshots[:snapshot]
}

// DeleteAccount removes an account from the state. Used by the transaction
// finalization to apply the self-destruct set.
func (s *StateDB) DeleteAccount(addr evm.Address) {
	delete(s.accounts, addr)
	delete(s.cache, addr)
}
