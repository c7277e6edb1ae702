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
	"bytes"
	"testing"

	"github.com/clevertechru/ethereumjs-vm/evm"
)

func TestStateDB_UnknownAccountsReadAsZero(t *testing.T) {
	state := NewStateDB()
	addr := evm.Address{0x42}

	if state.AccountExists(addr) {
		t.Errorf("unknown account reported as existing")
	}
	if !state.AccountIsEmpty(addr) {
		t.Errorf("unknown account reported as non-empty")
	}
	if got := state.GetBalance(addr); !got.IsZero() {
		t.Errorf("unknown account has balance %v", got)
	}
	if got := state.GetNonce(addr); got != 0 {
		t.Errorf("unknown account has nonce %d", got)
	}
	if got := state.GetCode(addr); got != nil {
		t.Errorf("unknown account has code %x", got)
	}
	if got := state.GetStorage(addr, evm.Key{}); !got.IsZero() {
		t.Errorf("unknown account has storage %v", got)
	}
}

func TestStateDB_MutationsAreVisibleToSubsequentReads(t *testing.T) {
	state := NewStateDB()
	addr := evm.Address{0x42}
	key := evm.Key{31: 1}
	value := evm.Word{31: 7}

	state.SetBalance(addr, evm.NewValue(100))
	state.SetNonce(addr, 3)
	state.SetCode(addr, evm.Code{1, 2, 3})
	state.SetStorage(addr, key, value)

	if !state.AccountExists(addr) {
		t.Errorf("mutated account does not exist")
	}
	if state.AccountIsEmpty(addr) {
		t.Errorf("mutated account reported as empty")
	}
	if got := state.GetBalance(addr); got != evm.NewValue(100) {
		t.Errorf("unexpected balance: %v", got)
	}
	if got := state.GetNonce(addr); got != 3 {
		t.Errorf("unexpected nonce: %d", got)
	}
	if got := state.GetCodeSize(addr); got != 3 {
		t.Errorf("unexpected code size: %d", got)
	}
	if got := state.GetStorage(addr, key); got != value {
		t.Errorf("unexpected storage value: %v", got)
	}
}

func TestStateDB_SnapshotsRollBackAllMutations(t *testing.T) {
	state := NewStateDB()
	addr := evm.Address{0x42}
	key := evm.Key{31: 1}

	state.SetBalance(addr, evm.NewValue(100))
	snapshot := state.CreateSnapshot()

	state.SetBalance(addr, evm.NewValue(50))
	state.SetStorage(addr, key, evm.Word{31: 9})
	state.SetCode(evm.Address{0x43}, evm.Code{1})

	state.RestoreSnapshot(snapshot)

	if got := state.GetBalance(addr); got != evm.NewValue(100) {
		t.Errorf("balance not rolled back, got %v", got)
	}
	if got := state.GetStorage(addr, key); !got.IsZero() {
		t.Errorf("storage not rolled back, got %v", got)
	}
	if state.AccountExists(evm.Address{0x43}) {
		t.Errorf("account creation not rolled back")
	}
}

func TestStateDB_NestedSnapshotsRestoreInReverseOrder(t *testing.T) {
	state := NewStateDB()
	addr := evm.Address{0x42}

	state.SetBalance(addr, evm.NewValue(1))
	outer := state.CreateSnapshot()
	state.SetBalance(addr, evm.NewValue(2))
	inner := state.CreateSnapshot()
	state.SetBalance(addr, evm.NewValue(3))

	state.RestoreSnapshot(inner)
	if got := state.GetBalance(addr); got != evm.NewValue(2) {
		t.Fatalf("inner snapshot not restored, got %v", got)
	}
	state.RestoreSnapshot(outer)
	if got := state.GetBalance(addr); got != evm.NewValue(1) {
		t.Fatalf("outer snapshot not restored, got %v", got)
	}
}

func TestStateDB_CacheIsWriteThrough(t *testing.T) {
	state := NewStateDB()
	addr := evm.Address{0x42}

	if _, found := state.CacheGet(addr); found {
		t.Fatalf("cache unexpectedly populated")
	}

	state.CachePut(addr, evm.Account{Balance: evm.NewValue(5), Nonce: 2, Exists: true})

	cached, found := state.CacheGet(addr)
	if !found {
		t.Fatalf("cached account not found")
	}
	if cached.Balance != evm.NewValue(5) || cached.Nonce != 2 {
		t.Errorf("unexpected cached account: %+v", cached)
	}

	// the backing state observes the cached view
	if got := state.GetBalance(addr); got != evm.NewValue(5) {
		t.Errorf("cache write not propagated to balance, got %v", got)
	}
	if got := state.GetNonce(addr); got != 2 {
		t.Errorf("cache write not propagated to nonce, got %d", got)
	}
}

func TestStateDB_DeleteAccountRemovesAllTraces(t *testing.T) {
	state := NewStateDB()
	addr := evm.Address{0x42}

	state.SetBalance(addr, evm.NewValue(100))
	state.SetCode(addr, evm.Code{1})
	state.CachePut(addr, evm.Account{Balance: evm.NewValue(100), Exists: true})

	state.DeleteAccount(addr)

	if state.AccountExists(addr) {
		t.Errorf("deleted account still exists")
	}
	if _, found := state.CacheGet(addr); found {
		t.Errorf("deleted account still cached")
	}
}

func TestStateDB_BlockHashes(t *testing.T) {
	state := NewStateDB()
	hash := evm.Hash{0x01}
	state.SetBlockHash(42, hash)

	if got := state.GetBlockHash(42); got != hash {
		t.Errorf("unexpected block hash: %v", got)
	}
	if got := state.GetBlockHash(43); got != (evm.Hash{}) {
		t.Errorf("unknown block has non-zero hash: %v", got)
	}
}

func TestStateDB_SnapshotsIsolateStorageMaps(t *testing.T) {
	state := NewStateDB()
	addr := evm.Address{0x42}
	key := evm.Key{31: 1}

	state.SetStorage(addr, key, evm.Word{31: 1})
	snapshot := state.CreateSnapshot()
	state.SetStorage(addr, key, evm.Word{31: 2})
	state.RestoreSnapshot(snapshot)

	if got := state.GetStorage(addr, key); got != (evm.Word{31: 1}) {
		t.Errorf("storage mutation leaked into snapshot, got %v", got)
	}
}

func TestStateDB_CodeReadsReturnTheStoredCode(t *testing.T) {
	state := NewStateDB()
	addr := evm.Address{0x42}
	code := evm.Code{1, 2, 3}
	state.SetCode(addr, code)

	if !bytes.Equal(state.GetCode(addr), code) {
		t.Errorf("unexpected code read back: %x", state.GetCode(addr))
	}
}
