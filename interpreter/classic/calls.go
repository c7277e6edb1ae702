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
	"github.com/holiman/uint256"
)

// genericCall implements the shared orchestration of CALL, CALLCODE, and
// DELEGATECALL: it assembles the configuration of the child frame, applies
// the value-transfer and new-account surcharges and the EIP-150 forwarding
// cap, dispatches the child to the frame runner, and merges the child's
// logs, refund, return data, and gas back into the running frame. A failed
// child is reported as a 0 pushed onto the stack; only the gas consumed by
// the child is lost.
func genericCall(c *context, kind evm.CallKind) error {
	stack := c.stack
	value := uint256.NewInt(0)

	// Pop call parameters.
	providedGas, addr := stack.pop(), stack.pop()
	if kind == evm.Call || kind == evm.CallCode {
		value = stack.pop()
	}
	inOffset, inSize, retOffset, retSize := stack.pop(), stack.pop(), stack.pop(), stack.pop()

	toAddr := evm.Address(addr.Bytes20())

	if checkSizeOffsetUint64Overflow(inOffset, inSize) != nil {
		return errOutOfGas
	}
	if checkSizeOffsetUint64Overflow(retOffset, retSize) != nil {
		return errOutOfGas
	}

	// Get the argument range and the output range from the memory. The
	// output side only requires expansion, no copy.
	args, err := c.memory.getSlice(inOffset.Uint64(), inSize.Uint64(), c)
	if err != nil {
		return err
	}
	output, err := c.memory.getSlice(retOffset.Uint64(), retSize.Uint64(), c)
	if err != nil {
		return err
	}

	// Beyond the depth limit nested calls fail silently: a 0 is pushed, no
	// state is consulted, and no gas beyond the bills above is spent.
	if c.params.Depth >= c.fees.CallDepthLimit {
		stack.pushUndefined().Clear()
		return nil
	}

	// Charge for transferring value.
	if !value.IsZero() {
		if err := c.useGas(c.fees.CallValueTransferGas); err != nil {
			return err
		}
	}

	// Non-zero value calls bringing a dead account to life are charged an
	// additional fee.
	if kind == evm.Call && !value.IsZero() &&
		(!c.context.AccountExists(toAddr) || c.context.AccountIsEmpty(toAddr)) {
		if err := c.useGas(c.fees.CallNewAccountGas); err != nil {
			return err
		}
	}

	// At most all but one 64th of the remaining gas may be forwarded to the
	// nested call; larger requests are silently lowered.
	nestedGas := callGas(c.gas, providedGas)
	if err := c.useGas(nestedGas); err != nil {
		// this usage can never fail because the endowment is at most
		// 63/64 of the current gas level
		return err
	}

	// A value transfer grants the child a stipend on top of the forwarded
	// gas; the unspent part flows back to this frame with the child's
	// remaining gas.
	if !value.IsZero() {
		nestedGas += c.fees.CallStipend
	}

	// Check that this frame holds enough balance to transfer the requested
	// value; if not, the call fails without invoking the child and the
	// forwarded gas is returned.
	if kind != evm.DelegateCall && !value.IsZero() {
		balance := c.contract.Balance.ToUint256()
		if balance.Lt(value) {
			stack.pushUndefined().Clear()
			c.gas += nestedGas
			return nil
		}
	}

	// Persist the current contract view so the child observes the
	// up-to-date account.
	c.context.CachePut(c.params.Recipient, c.contract)

	// Prepare arguments, depending on the call kind.
	callParams := evm.CallParameters{
		Input:          args,
		Gas:            nestedGas,
		Value:          evm.ValueFromUint256(value),
		CodeAddress:    toAddr,
		SelfDestructed: c.selfDestructed,
	}

	switch kind {
	case evm.Call:
		callParams.Sender = c.params.Recipient
		callParams.Recipient = toAddr

	case evm.CallCode:
		callParams.Sender = c.params.Recipient
		callParams.Recipient = c.params.Recipient

	case evm.DelegateCall:
		callParams.Sender = c.params.Sender
		callParams.Recipient = c.params.Recipient
		callParams.Value = c.params.Value
	}

	// Perform the call.
	ret, err := c.context.Call(kind, callParams)
	if err != nil {
		return err
	}

	// Fold the child outcome into this frame.
	c.logs = append(c.logs, ret.Logs...)
	c.refund += ret.GasRefund
	c.gas += ret.GasLeft

	success := stack.pushUndefined()
	if ret.Success {
		copy(output, ret.Output)
		c.contract = loadAccountView(c.context, c.params.Recipient)
		success.SetOne()
	} else {
		success.Clear()
	}
	return nil
}

// genericCreate orchestrates a CREATE instruction: the nonce of the creating
// account is incremented before the child is spawned and rolled back when
// the child fails; the created address is pushed on success.
func genericCreate(c *context) error {
	var (
		value  = c.stack.pop()
		offset = c.stack.pop()
		size   = c.stack.pop()
	)

	if checkSizeOffsetUint64Overflow(offset, size) != nil {
		return errOutOfGas
	}

	input, err := c.memory.getSlice(offset.Uint64(), size.Uint64(), c)
	if err != nil {
		return err
	}

	if c.params.Depth >= c.fees.CallDepthLimit {
		c.stack.pushUndefined().Clear()
		return nil
	}

	if !value.IsZero() {
		balance := c.contract.Balance.ToUint256()
		if balance.Lt(value) {
			c.stack.pushUndefined().Clear()
			return nil
		}
	}

	// The creation nonce is consumed before the child frame runs so the
	// child observes the incremented value.
	nonce := c.contract.Nonce
	c.contract.Nonce = nonce + 1
	c.context.SetNonce(c.params.Recipient, nonce+1)

	// Apply EIP-150: retain one 64th of the remaining gas.
	gas := c.gas
	gas -= gas / 64
	if err := c.useGas(gas); err != nil {
		return err
	}

	c.context.CachePut(c.params.Recipient, c.contract)

	ret, err := c.context.Call(evm.Create, evm.CallParameters{
		Sender:         c.params.Recipient,
		Value:          evm.ValueFromUint256(value),
		Input:          input,
		Gas:            gas,
		SelfDestructed: c.selfDestructed,
	})
	if err != nil {
		return err
	}

	c.logs = append(c.logs, ret.Logs...)
	c.refund += ret.GasRefund
	c.gas += ret.GasLeft

	success := c.stack.pushUndefined()
	if ret.Success {
		c.contract = loadAccountView(c.context, c.params.Recipient)
		success.SetBytes20(ret.CreatedAddress[:])
	} else {
		// the pre-incremented nonce is taken back for failed creations
		c.contract.Nonce = nonce
		c.context.SetNonce(c.params.Recipient, nonce)
		c.context.CachePut(c.params.Recipient, c.contract)
		success.Clear()
	}
	return nil
}

// opSelfdestruct transfers the entire balance of the executing account to
// the beneficiary and schedules the account for deletion at the end of the
// transaction. The first destruction of an address within a transaction is
// refunded.
func opSelfdestruct(c *context) (status, error) {
	beneficiary := evm.Address(c.stack.pop().Bytes20())
	balance := c.contract.Balance

	// Reviving a dead beneficiary with a non-zero balance transfer is
	// charged like account creation in calls.
	if !balance.IsZero() &&
		(!c.context.AccountExists(beneficiary) || c.context.AccountIsEmpty(beneficiary)) {
		if err := c.useGas(c.fees.CallNewAccountGas); err != nil {
			return statusStopped, err
		}
	}

	if _, destructed := c.selfDestructed[c.params.Recipient]; !destructed {
		c.refund += c.fees.SuicideRefundGas
	}
	c.selfDestructed[c.params.Recipient] = beneficiary

	// The balance moves in two steps: credit the beneficiary, then clear
	// the destructed account.
	recipientBalance := c.context.GetBalance(beneficiary)
	c.context.SetBalance(beneficiary, evm.Add(recipientBalance, balance))
	c.context.SetBalance(c.params.Recipient, evm.Value{})
	c.contract.Balance = evm.Value{}
	c.context.CachePut(c.params.Recipient, c.contract)

	return statusSelfDestructed, nil
}
