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
	"github.com/clevertechru/ethereumjs-vm/interpreter/classic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	opPush1        = 0x60
	opPush20       = 0x73
	opMstore       = 0x52
	opMstore8      = 0x53
	opReturn       = 0xf3
	opCall         = 0xf1
	opDelegateCall = 0xf4
	opCreate       = 0xf0
	opSelfdestruct = 0xff
	opSstore       = 0x55
	opLog1         = 0xa1
	opCaller       = 0x33
	opStop         = 0x00
)

var (
	sender = evm.Address{0x01}
	target = evm.Address{0x02}
	other  = evm.Address{0x03}
)

func newTestProcessor(t *testing.T, state *StateDB) *Processor {
	t.Helper()
	interpreter, err := classic.NewInterpreter(classic.Config{})
	if err != nil {
		t.Fatalf("failed to create interpreter: %v", err)
	}
	return NewProcessor(interpreter, state, nil, evm.BlockParameters{
		BlockNumber: 10,
		GasLimit:    1 << 30,
	}, evm.TransactionParameters{Origin: sender})
}

// returnValueCode produces code returning the given byte as a 32-byte word.
func returnValueCode(value byte) evm.Code {
	return evm.Code{
		opPush1, value,
		opPush1, 0x00,
		opMstore,
		opPush1, 0x20,
		opPush1, 0x00,
		opReturn,
	}
}

func TestProcessor_RunCall_ExecutesSimpleContract(t *testing.T) {
	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(1000))
	state.SetCode(target, returnValueCode(0x2a))

	proc := newTestProcessor(t, state)
	result, err := proc.RunCall(sender, target, nil, evm.NewValue(0), 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("execution failed: %v", result.Err)
	}
	if len(result.Output) != 32 || result.Output[31] != 0x2a {
		t.Errorf("unexpected output: %x", result.Output)
	}
}

func TestProcessor_RunCall_TransfersValue(t *testing.T) {
	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(1000))
	state.SetCode(target, evm.Code{opStop})

	proc := newTestProcessor(t, state)
	result, err := proc.RunCall(sender, target, nil, evm.NewValue(100), 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("execution failed: %v", result.Err)
	}
	if got := state.GetBalance(sender); got != evm.NewValue(900) {
		t.Errorf("unexpected sender balance: %v", got)
	}
	if got := state.GetBalance(target); got != evm.NewValue(100) {
		t.Errorf("unexpected target balance: %v", got)
	}
}

func TestProcessor_RunCall_InsufficientBalanceFails(t *testing.T) {
	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(10))

	proc := newTestProcessor(t, state)
	if _, err := proc.RunCall(sender, target, nil, evm.NewValue(100), 100000); err == nil {
		t.Errorf("expected value transfer to fail")
	}
}

// callCode produces code calling the given address and returning the first
// 32 bytes of its output.
func callCode(callee evm.Address) evm.Code {
	code := evm.Code{
		opPush1, 0x20, // retSize
		opPush1, 0x00, // retOffset
		opPush1, 0x00, // inSize
		opPush1, 0x00, // inOffset
		opPush1, 0x00, // value
		opPush20,
	}
	code = append(code, callee[:]...)
	code = append(code,
		0x61, 0xff, 0xff, // PUSH2 0xffff: requested gas
		opCall,
		opPush1, 0x20,
		opPush1, 0x00,
		opReturn,
	)
	return code
}

func TestProcessor_NestedCallsPropagateResults(t *testing.T) {
	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(1000))
	state.SetCode(other, returnValueCode(0x2a))
	state.SetCode(target, callCode(other))

	proc := newTestProcessor(t, state)
	result, err := proc.RunCall(sender, target, nil, evm.NewValue(0), 1000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("execution failed: %v", result.Err)
	}
	if len(result.Output) != 32 || result.Output[31] != 0x2a {
		t.Errorf("nested call result not propagated, output %x", result.Output)
	}
}

func TestProcessor_DelegateCallRunsForeignCodeOnOwnStorage(t *testing.T) {
	// the library writes 0x07 into slot 0 of the calling contract
	library := evm.Code{
		opPush1, 0x07,
		opPush1, 0x00,
		opSstore,
	}

	caller := evm.Code{
		opPush1, 0x00, // retSize
		opPush1, 0x00, // retOffset
		opPush1, 0x00, // inSize
		opPush1, 0x00, // inOffset
		opPush20,
	}
	caller = append(caller, other[:]...)
	caller = append(caller,
		0x62, 0xff, 0xff, 0xff, // PUSH3: requested gas
		opDelegateCall,
		opStop,
	)

	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(1000))
	state.SetCode(other, library)
	state.SetCode(target, caller)

	proc := newTestProcessor(t, state)
	result, err := proc.RunCall(sender, target, nil, evm.NewValue(0), 1000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("execution failed: %v", result.Err)
	}

	// the write landed in the caller's storage, not the library's
	if got := state.GetStorage(target, evm.Key{}); got != (evm.Word{31: 0x07}) {
		t.Errorf("unexpected storage of caller: %v", got)
	}
	if got := state.GetStorage(other, evm.Key{}); !got.IsZero() {
		t.Errorf("library storage was modified: %v", got)
	}
}

func TestProcessor_CreateDeploysReturnedCode(t *testing.T) {
	// init code returning a single STOP instruction as the deployed code
	initCode := evm.Code{
		opPush1, opStop,
		opPush1, 0x00,
		opMstore8,
		opPush1, 0x01,
		opPush1, 0x00,
		opReturn,
	}

	// the creator stores the init code in memory and runs CREATE
	creator := evm.Code{}
	for i, b := range initCode {
		creator = append(creator, opPush1, b, opPush1, byte(i), opMstore8)
	}
	creator = append(creator,
		opPush1, byte(len(initCode)), // size
		opPush1, 0x00, // offset
		opPush1, 0x00, // value
		opCreate,
		opStop,
	)

	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(1000))
	state.SetCode(target, creator)

	proc := newTestProcessor(t, state)
	result, err := proc.RunCall(sender, target, nil, evm.NewValue(0), 1000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("execution failed: %v", result.Err)
	}

	// the creating contract consumed its first nonce
	if got := state.GetNonce(target); got != 1 {
		t.Errorf("unexpected creator nonce: %d", got)
	}

	created := evm.Address(crypto.CreateAddress(common.Address(target), 0))
	if !bytes.Equal(state.GetCode(created), evm.Code{opStop}) {
		t.Errorf("unexpected deployed code: %x", state.GetCode(created))
	}
}

func TestProcessor_SelfDestructedAccountsAreDeleted(t *testing.T) {
	destructor := evm.Code{opPush20}
	destructor = append(destructor, other[:]...)
	destructor = append(destructor, opSelfdestruct)

	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(1000))
	state.SetBalance(target, evm.NewValue(500))
	state.SetCode(target, destructor)

	proc := newTestProcessor(t, state)
	result, err := proc.RunCall(sender, target, nil, evm.NewValue(0), 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("execution failed: %v", result.Err)
	}

	if got, want := result.GasRefund, evm.HomesteadSchedule.SuicideRefundGas; got != want {
		t.Errorf("unexpected refund, want %d, got %d", want, got)
	}
	if got := state.GetBalance(other); got != evm.NewValue(500) {
		t.Errorf("balance not transferred to beneficiary, got %v", got)
	}
	if state.AccountExists(target) {
		t.Errorf("self-destructed account still exists")
	}
}

func TestProcessor_FailedInnerCallRollsBackItsEffects(t *testing.T) {
	// the callee stores a value and then runs an unassigned instruction
	callee := evm.Code{
		opPush1, 0x07,
		opPush1, 0x00,
		opSstore,
		0xfe,
	}

	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(1000))
	state.SetCode(other, callee)
	state.SetCode(target, callCode(other))

	proc := newTestProcessor(t, state)
	result, err := proc.RunCall(sender, target, nil, evm.NewValue(0), 1000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("outer execution failed: %v", result.Err)
	}

	// the output window stays zero: the failed call copies no return data
	if len(result.Output) != 32 || result.Output[31] != 0 {
		t.Errorf("unexpected output: %x", result.Output)
	}
	// the callee's storage write was rolled back
	if got := state.GetStorage(other, evm.Key{}); !got.IsZero() {
		t.Errorf("callee effects not rolled back: %v", got)
	}
}

func TestProcessor_LogsOfNestedFramesAreCollected(t *testing.T) {
	// the callee emits a log with one topic
	callee := evm.Code{
		opPush1, 0x42, // topic
		opPush1, 0x00, // size
		opPush1, 0x00, // offset
		opLog1,
		opStop,
	}

	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(1000))
	state.SetCode(other, callee)
	state.SetCode(target, callCode(other))

	proc := newTestProcessor(t, state)
	result, err := proc.RunCall(sender, target, nil, evm.NewValue(0), 1000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("execution failed: %v", result.Err)
	}
	if len(result.Logs) != 1 {
		t.Fatalf("unexpected number of logs: %d", len(result.Logs))
	}
	log := result.Logs[0]
	if log.Address != other {
		t.Errorf("unexpected log address: %v", log.Address)
	}
	if len(log.Topics) != 1 || log.Topics[0][31] != 0x42 {
		t.Errorf("unexpected log topics: %v", log.Topics)
	}
}

func TestProcessor_CallerIsVisibleToTheNestedFrame(t *testing.T) {
	// the callee returns its caller
	callee := evm.Code{
		opCaller,
		opPush1, 0x00,
		opMstore,
		opPush1, 0x20,
		opPush1, 0x00,
		opReturn,
	}

	state := NewStateDB()
	state.SetBalance(sender, evm.NewValue(1000))
	state.SetCode(other, callee)
	state.SetCode(target, callCode(other))

	proc := newTestProcessor(t, state)
	result, err := proc.RunCall(sender, target, nil, evm.NewValue(0), 1000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("execution failed: %v", result.Err)
	}
	if got := result.Output[12:32]; !bytes.Equal(got, target[:]) {
		t.Errorf("unexpected caller observed by the nested frame: %x", got)
	}
}
