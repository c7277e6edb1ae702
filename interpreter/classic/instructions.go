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
	"bytes"

	"github.com/clevertechru/ethereumjs-vm/evm"
	"github.com/holiman/uint256"
)

func opEndWithResult(c *context) error {
	offset := *c.stack.pop()
	size := *c.stack.pop()
	if err := checkSizeOffsetUint64Overflow(&offset, &size); err != nil {
		return err
	}
	data, err := c.memory.getSlice(offset.Uint64(), size.Uint64(), c)
	if err != nil {
		return err
	}
	c.returnData = bytes.Clone(data)
	return nil
}

func opPc(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(c.pc))
}

func opJump(c *context) error {
	destination := c.stack.pop()
	if !destination.IsUint64() || !c.jumpDests.isValid(destination.Uint64()) {
		return errInvalidJump
	}
	// Update the PC to the jump destination -1 since the dispatch loop will
	// increase the PC by 1 afterward.
	c.pc = int32(destination.Uint64()) - 1
	return nil
}

func opJumpi(c *context) error {
	destination := c.stack.pop()
	condition := c.stack.pop()
	if !condition.IsZero() {
		if !destination.IsUint64() || !c.jumpDests.isValid(destination.Uint64()) {
			return errInvalidJump
		}
		// Update the PC to the jump destination -1 since the dispatch loop
		// will increase the PC by 1 afterward.
		c.pc = int32(destination.Uint64()) - 1
	}
	return nil
}

func opPop(c *context) {
	c.stack.pop()
}

// opPush reads the n immediate bytes following the PUSH instruction from the
// code as a big-endian word, zero-padded on the right if the code ends
// early, and advances the program counter over the immediate data.
func opPush(c *context, n int) {
	z := c.stack.pushUndefined()
	start := int(c.pc) + 1
	end := start + n
	if end <= len(c.code) {
		z.SetBytes(c.code[start:end])
	} else {
		var value [32]byte
		copy(value[:n], c.code[start:])
		z.SetBytes(value[:n])
	}
	c.pc += int32(n)
}

func opDup(c *context, pos int) {
	c.stack.dup(pos - 1)
}

func opSwap(c *context, pos int) {
	c.stack.swap(pos)
}

func opMstore(c *context) error {
	var addr = c.stack.pop()
	var value = c.stack.pop()

	offset, overflow := addr.Uint64WithOverflow()
	if overflow {
		return errOutOfGas
	}
	return c.memory.setWord(offset, value, c)
}

func opMstore8(c *context) error {
	var addr = c.stack.pop()
	var value = c.stack.pop()

	offset, overflow := addr.Uint64WithOverflow()
	if overflow {
		return errOutOfGas
	}
	return c.memory.setByte(offset, byte(value.Uint64()), c)
}

func opMload(c *context) error {
	var trg = c.stack.peek()
	var addr = *trg

	if !addr.IsUint64() {
		return errOutOfGas
	}
	return c.memory.getWord(addr.Uint64(), trg, c)
}

func opMsize(c *context) {
	c.stack.pushUndefined().SetUint64(c.memory.length())
}

func opSload(c *context) {
	top := c.stack.peek()
	key := evm.Key(top.Bytes32())
	value := c.context.GetStorage(c.params.Recipient, key)
	top.SetBytes32(value[:])
}

func opSstore(c *context) error {
	key := evm.Key(c.stack.pop().Bytes32())
	value := evm.Word(c.stack.pop().Bytes32())

	previous := c.context.GetStorage(c.params.Recipient, key)
	cost, refund := gasSStore(previous, value, c.fees)
	if err := c.useGas(cost); err != nil {
		return err
	}
	c.refund += refund
	c.context.SetStorage(c.params.Recipient, key, value)

	// the storage write may have aged the cached account view
	c.contract = c.context.GetAccount(c.params.Recipient)
	return nil
}

func opCaller(c *context) {
	c.stack.pushUndefined().SetBytes20(c.params.Sender[:])
}

func opCallvalue(c *context) {
	c.stack.pushUndefined().SetBytes32(c.params.Value[:])
}

func opCallDatasize(c *context) {
	size := len(c.params.Input)
	c.stack.pushUndefined().SetUint64(uint64(size))
}

func opCallDataload(c *context) {
	top := c.stack.peek()
	offset, overflow := top.Uint64WithOverflow()
	if overflow {
		top.Clear()
		return
	}
	top.SetBytes(getData(c.params.Input, offset, 32))
}

// genericDataCopy copies a slice of the given data source into memory,
// padding with zeros when the source is shorter than the requested range.
// Used by CALLDATACOPY and CODECOPY.
func genericDataCopy(c *context, data []byte) error {
	var (
		memOffset  = c.stack.pop()
		dataOffset = c.stack.pop()
		length     = c.stack.pop()
	)
	dataOffset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOffset64 = 0xffffffffffffffff
	}

	if err := checkSizeOffsetUint64Overflow(memOffset, length); err != nil {
		return err
	}

	// Charge for the copy costs
	words := evm.SizeInWords(length.Uint64())
	if err := c.useGas(c.fees.CopyGas * evm.Gas(words)); err != nil {
		return err
	}

	trg, err := c.memory.getSlice(memOffset.Uint64(), length.Uint64(), c)
	if err != nil {
		return err
	}
	copy(trg, getData(data, dataOffset64, length.Uint64()))
	return nil
}

func opCodeSize(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(len(c.code)))
}

func opExtcodesize(c *context) {
	top := c.stack.peek()
	address := evm.Address(top.Bytes20())
	top.SetUint64(uint64(c.context.GetCodeSize(address)))
}

func opExtCodeCopy(c *context) error {
	var (
		stack      = c.stack
		a          = stack.pop()
		memOffset  = stack.pop()
		codeOffset = stack.pop()
		length     = stack.pop()
	)
	if err := checkSizeOffsetUint64Overflow(memOffset, length); err != nil {
		return err
	}

	// Charge for the length of the copied code
	words := evm.SizeInWords(length.Uint64())
	if err := c.useGas(c.fees.CopyGas * evm.Gas(words)); err != nil {
		return err
	}

	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = 0xffffffffffffffff
	}

	address := evm.Address(a.Bytes20())
	trg, err := c.memory.getSlice(memOffset.Uint64(), length.Uint64(), c)
	if err != nil {
		return err
	}
	copy(trg, getData(c.context.GetCode(address), codeOffset64, length.Uint64()))
	return nil
}

func opAnd(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.And(a, b)
}

func opOr(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Or(a, b)
}

func opNot(c *context) {
	a := c.stack.peek()
	a.Not(a)
}

func opXor(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Xor(a, b)
}

func opIszero(c *context) {
	top := c.stack.peek()
	if top.IsZero() {
		top.SetOne()
	} else {
		top.Clear()
	}
}

func opEq(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Eq(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opLt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Lt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opGt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Gt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opSlt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Slt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opSgt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Sgt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opSignExtend(c *context) {
	back, num := c.stack.pop(), c.stack.peek()
	num.ExtendSign(num, back)
}

func opByte(c *context) {
	th, val := c.stack.pop(), c.stack.peek()
	val.Byte(th)
}

func opAdd(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Add(a, b)
}

func opSub(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Sub(a, b)
}

func opMul(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Mul(a, b)
}

func opDiv(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Div(a, b)
}

func opSDiv(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.SDiv(a, b)
}

func opMod(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Mod(a, b)
}

func opSMod(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.SMod(a, b)
}

func opAddMod(c *context) {
	a := c.stack.pop()
	b := c.stack.pop()
	n := c.stack.peek()
	n.AddMod(a, b, n)
}

func opMulMod(c *context) {
	a := c.stack.pop()
	b := c.stack.pop()
	n := c.stack.peek()
	n.MulMod(a, b, n)
}

func opExp(c *context) error {
	base, exponent := c.stack.pop(), c.stack.peek()
	if err := c.useGas(expByteCost(exponent, c.fees)); err != nil {
		return err
	}
	exponent.Exp(base, exponent)
	return nil
}

var sha3Cache = newSha3WordCache(1 << 16)

func opSha3(c *context) error {
	offset, size := c.stack.pop(), c.stack.peek()

	if checkSizeOffsetUint64Overflow(offset, size) != nil {
		return errOutOfGas
	}

	data, err := c.memory.getSlice(offset.Uint64(), size.Uint64(), c)
	if err != nil {
		return err
	}

	// charge the dynamic gas price
	words := evm.SizeInWords(size.Uint64())
	if err := c.useGas(c.fees.Sha3WordGas * evm.Gas(words)); err != nil {
		return err
	}
	var hash evm.Hash
	if c.withShaCache {
		// Cache hashes since identical values are frequently re-hashed.
		hash = sha3Cache.hash(data)
	} else {
		hash = Keccak256(data)
	}

	size.SetBytes32(hash[:])
	return nil
}

func opGas(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(c.gas))
}

func opDifficulty(c *context) {
	difficulty := c.params.Difficulty
	c.stack.pushUndefined().SetBytes32(difficulty[:])
}

func opTimestamp(c *context) {
	time := c.params.Timestamp
	c.stack.pushUndefined().SetUint64(uint64(time))
}

func opNumber(c *context) {
	number := c.params.BlockNumber
	c.stack.pushUndefined().SetUint64(uint64(number))
}

func opCoinbase(c *context) {
	coinbase := c.params.Coinbase
	c.stack.pushUndefined().SetBytes20(coinbase[:])
}

func opGasLimit(c *context) {
	limit := c.params.BlockParameters.GasLimit
	c.stack.pushUndefined().SetUint64(uint64(limit))
}

func opGasPrice(c *context) {
	price := c.params.GasPrice
	c.stack.pushUndefined().SetBytes32(price[:])
}

func opBalance(c *context) {
	slot := c.stack.peek()
	address := evm.Address(slot.Bytes20())
	var balance evm.Value
	if address == c.params.Recipient {
		// the executing account is served from the cached view
		balance = c.contract.Balance
	} else {
		balance = c.context.GetBalance(address)
	}
	slot.SetBytes32(balance[:])
}

func opBlockhash(c *context) {
	num := c.stack.peek()
	num64, overflow := num.Uint64WithOverflow()

	if overflow {
		num.Clear()
		return
	}
	var upper, lower uint64
	upper = uint64(c.params.BlockNumber)
	if upper < 257 {
		lower = 0
	} else {
		lower = upper - 256
	}
	if num64 >= lower && num64 < upper {
		hash := c.context.GetBlockHash(int64(num64))
		num.SetBytes(hash[:])
	} else {
		num.Clear()
	}
}

func opAddress(c *context) {
	c.stack.pushUndefined().SetBytes20(c.params.Recipient[:])
}

func opOrigin(c *context) {
	origin := c.params.Origin
	c.stack.pushUndefined().SetBytes20(origin[:])
}

func opLog(c *context, size int) error {
	topics := make([]evm.Hash, size)
	stack := c.stack
	mStart, mSize := stack.pop(), stack.pop()

	if err := checkSizeOffsetUint64Overflow(mStart, mSize); err != nil {
		return err
	}

	for i := 0; i < size; i++ {
		addr := stack.pop()
		topics[i] = addr.Bytes32()
	}

	start := mStart.Uint64()
	logSize := mSize.Uint64()

	// charge for the topic count and data size
	price := c.fees.LogTopicGas*evm.Gas(size) + c.fees.LogDataGas*evm.Gas(logSize)
	if err := c.useGas(price); err != nil {
		return err
	}

	data, err := c.memory.getSlice(start, logSize, c)
	if err != nil {
		return err
	}

	// make a copy of the data to disconnect from memory
	logData := bytes.Clone(data)
	c.logs = append(c.logs, evm.Log{
		Address: c.params.Recipient,
		Topics:  topics,
		Data:    logData,
	})
	return nil
}

// getData returns a slice of size bytes from the data starting at the given
// offset, right-padded with zeros when the data is shorter.
func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	// Apply some right-padding to the result.
	res := make([]byte, int(size))
	copy(res, data[start:end])
	return res
}

// checkSizeOffsetUint64Overflow reports ranges that could never be paid for
// since their implied memory expansion exceeds any representable gas level.
func checkSizeOffsetUint64Overflow(offset, size *uint256.Int) error {
	if size.IsZero() {
		return nil
	}
	if !offset.IsUint64() || !size.IsUint64() || offset.Uint64()+size.Uint64() < offset.Uint64() {
		return errOutOfGas
	}
	return nil
}
