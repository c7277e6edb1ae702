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
	"fmt"
	"maps"

	"github.com/clevertechru/ethereumjs-vm/evm"

	// geth dependencies
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Processor executes call frames on top of an interpreter and an in-memory
// state. It implements the frame-runner side of the execution model: nested
// frames requested by call-class instructions are resolved, executed, and
// their outcomes reported back to the requesting frame.
type Processor struct {
	interpreter evm.Interpreter
	state       *StateDB
	fees        *evm.FeeSchedule
	block       evm.BlockParameters
	transaction evm.TransactionParameters
}

func NewProcessor(
	interpreter evm.Interpreter,
	state *StateDB,
	fees *evm.FeeSchedule,
	block evm.BlockParameters,
	transaction evm.TransactionParameters,
) *Processor {
	if fees == nil {
		fees = &evm.HomesteadSchedule
	}
	return &Processor{
		interpreter: interpreter,
		state:       state,
		fees:        fees,
		block:       block,
		transaction: transaction,
	}
}

// RunCall executes the code of the given recipient as a top-level frame,
// transferring the given value from the sender first. Self-destructed
// accounts are deleted from the state when the frame completes successfully.
func (p *Processor) RunCall(
	sender, recipient evm.Address,
	input evm.Data,
	value evm.Value,
	gas evm.Gas,
) (evm.Result, error) {
	ctx := runContext{StateDB: p.state, processor: p, depth: 0}

	snapshot := p.state.CreateSnapshot()
	if !canTransferValue(p.state, value, sender, &recipient) {
		p.state.RestoreSnapshot(snapshot)
		return evm.Result{}, fmt.Errorf("insufficient balance for value transfer")
	}
	transferValue(p.state, value, sender, recipient)

	code := p.state.GetCode(recipient)
	codeHash := evm.Hash(crypto.Keccak256(code))

	result, err := p.interpreter.Run(evm.Parameters{
		BlockParameters:       p.block,
		TransactionParameters: p.transaction,
		Context:               &ctx,
		Kind:                  evm.Call,
		Depth:                 0,
		Gas:                   gas,
		Recipient:             recipient,
		Sender:                sender,
		Input:                 input,
		Value:                 value,
		CodeHash:              &codeHash,
		Code:                  code,
	})
	if err != nil {
		return evm.Result{}, err
	}
	if !result.Success {
		p.state.RestoreSnapshot(snapshot)
		return result, nil
	}

	for addr := range result.SelfDestructed {
		p.state.DeleteAccount(addr)
	}
	return result, nil
}

// runContext serves the nested calls of running frames. Each nesting level
// operates on a copy with an incremented depth counter.
type runContext struct {
	*StateDB
	processor *Processor
	depth     int
}

func (r *runContext) Call(kind evm.CallKind, parameters evm.CallParameters) (evm.CallResult, error) {
	// the self-destruct set is shared with the child; the additions of a
	// failed child are discarded together with its other effects
	saved := maps.Clone(parameters.SelfDestructed)
	var result evm.CallResult
	var err error
	if kind == evm.Create {
		result, err = r.executeCreate(parameters)
	} else {
		result, err = r.executeCall(kind, parameters)
	}
	if err == nil && !result.Success && parameters.SelfDestructed != nil {
		clear(parameters.SelfDestructed)
		maps.Copy(parameters.SelfDestructed, saved)
	}
	return result, err
}

func (r *runContext) executeCall(kind evm.CallKind, parameters evm.CallParameters) (evm.CallResult, error) {
	errResult := evm.CallResult{
		Success: false,
		GasLeft: parameters.Gas,
	}
	if r.depth+1 > r.processor.fees.CallDepthLimit {
		return errResult, nil
	}

	snapshot := r.StateDB.CreateSnapshot()

	// Only plain calls move balance; CALLCODE and DELEGATECALL run foreign
	// code in the caller's own account.
	if kind == evm.Call {
		if !canTransferValue(r.StateDB, parameters.Value, parameters.Sender, &parameters.Recipient) {
			r.StateDB.RestoreSnapshot(snapshot)
			return errResult, nil
		}
		transferValue(r.StateDB, parameters.Value, parameters.Sender, parameters.Recipient)
	}

	code := r.StateDB.GetCode(parameters.CodeAddress)
	codeHash := evm.Hash(crypto.Keccak256(code))

	child := runContext{StateDB: r.StateDB, processor: r.processor, depth: r.depth + 1}
	result, err := r.processor.interpreter.Run(evm.Parameters{
		BlockParameters:       r.processor.block,
		TransactionParameters: r.processor.transaction,
		Context:               &child,
		Kind:                  kind,
		Depth:                 child.depth,
		Gas:                   parameters.Gas,
		Recipient:             parameters.Recipient,
		Sender:                parameters.Sender,
		Input:                 parameters.Input,
		Value:                 parameters.Value,
		CodeHash:              &codeHash,
		Code:                  code,
		SelfDestructed:        parameters.SelfDestructed,
	})
	if err != nil {
		return evm.CallResult{}, err
	}
	if !result.Success {
		// a trapped child loses its entire gas budget and all its effects
		r.StateDB.RestoreSnapshot(snapshot)
		return evm.CallResult{Success: false}, nil
	}

	return evm.CallResult{
		Output:    result.Output,
		GasLeft:   result.GasLeft,
		GasRefund: result.GasRefund,
		Logs:      result.Logs,
		Success:   true,
	}, nil
}

func (r *runContext) executeCreate(parameters evm.CallParameters) (evm.CallResult, error) {
	errResult := evm.CallResult{
		Success: false,
		GasLeft: parameters.Gas,
	}
	if r.depth+1 > r.processor.fees.CallDepthLimit {
		return errResult, nil
	}

	// The creating frame has already consumed its nonce; the consumed value
	// determines the address of the new contract.
	nonce := r.StateDB.GetNonce(parameters.Sender)
	if nonce == 0 {
		return evm.CallResult{}, fmt.Errorf("creation nonce of %v has not been consumed", parameters.Sender)
	}
	createdAddress := evm.Address(crypto.CreateAddress(common.Address(parameters.Sender), nonce-1))

	snapshot := r.StateDB.CreateSnapshot()

	if !canTransferValue(r.StateDB, parameters.Value, parameters.Sender, &createdAddress) {
		r.StateDB.RestoreSnapshot(snapshot)
		return errResult, nil
	}
	transferValue(r.StateDB, parameters.Value, parameters.Sender, createdAddress)

	code := evm.Code(parameters.Input)
	codeHash := evm.Hash(crypto.Keccak256(code))

	child := runContext{StateDB: r.StateDB, processor: r.processor, depth: r.depth + 1}
	result, err := r.processor.interpreter.Run(evm.Parameters{
		BlockParameters:       r.processor.block,
		TransactionParameters: r.processor.transaction,
		Context:               &child,
		Kind:                  evm.Create,
		Depth:                 child.depth,
		Gas:                   parameters.Gas,
		Recipient:             createdAddress,
		Sender:                parameters.Sender,
		Input:                 nil,
		Value:                 parameters.Value,
		CodeHash:              &codeHash,
		Code:                  code,
		SelfDestructed:        parameters.SelfDestructed,
	})
	if err != nil {
		return evm.CallResult{}, err
	}

	if result.Success {
		// charge for depositing the returned code
		depositCost := r.processor.fees.CreateDataGas * evm.Gas(len(result.Output))
		if result.GasLeft < depositCost {
			result.Success = false
		} else {
			result.GasLeft -= depositCost
			r.StateDB.SetCode(createdAddress, evm.Code(result.Output))
		}
	}

	if !result.Success {
		r.StateDB.RestoreSnapshot(snapshot)
		return evm.CallResult{Success: false}, nil
	}

	return evm.CallResult{
		Output:         result.Output,
		GasLeft:        result.GasLeft,
		GasRefund:      result.GasRefund,
		Logs:           result.Logs,
		CreatedAddress: createdAddress,
		Success:        true,
	}, nil
}

func canTransferValue(
	state evm.StateManager,
	value evm.Value,
	sender evm.Address,
	recipient *evm.Address,
) bool {
	if value.IsZero() {
		return true
	}

	senderBalance := state.GetBalance(sender)
	if senderBalance.Cmp(value) < 0 {
		return false
	}

	if recipient == nil || sender == *recipient {
		return true
	}

	receiverBalance := state.GetBalance(*recipient)
	updatedBalance := evm.Add(receiverBalance, value)
	if updatedBalance.Cmp(receiverBalance) < 0 || updatedBalance.Cmp(value) < 0 {
		return false
	}

	return true
}

// Only to be called after canTransferValue.
func transferValue(
	state evm.StateManager,
	value evm.Value,
	sender evm.Address,
	recipient evm.Address,
) {
	if value.IsZero() {
		return
	}
	if sender == recipient {
		return
	}

	senderBalance := state.GetBalance(sender)
	receiverBalance := state.GetBalance(recipient)

	state.SetBalance(sender, evm.Sub(senderBalance, value))
	state.SetBalance(recipient, evm.Add(receiverBalance, value))
}
