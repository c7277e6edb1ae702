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

// FeeSchedule is the immutable set of gas cost constants of a single fork.
// It is passed in as a configuration value rather than held in a process
// singleton, enabling a single binary to execute multiple forks by
// supplying different schedules.
type FeeSchedule struct {
	// Tiered base costs shared by groups of instructions.
	ZeroGas    Gas // instructions of the zero tier (STOP, RETURN)
	BaseGas    Gas // instructions of the base tier (ADDRESS, PC, POP, ...)
	VeryLowGas Gas // instructions of the very-low tier (ADD, PUSH, DUP, ...)
	LowGas     Gas // instructions of the low tier (MUL, DIV, MOD, ...)
	MidGas     Gas // instructions of the mid tier (ADDMOD, MULMOD, JUMP)
	HighGas    Gas // instructions of the high tier (JUMPI)

	// Per-instruction base costs.
	ExpGas          Gas
	Sha3Gas         Gas
	SloadGas        Gas
	JumpdestGas     Gas
	BalanceGas      Gas
	ExtCodeGas      Gas
	BlockhashGas    Gas
	LogGas          Gas
	CreateGas       Gas
	CallGas         Gas
	SelfdestructGas Gas

	// Dynamic surcharges.
	ExpByteGas           Gas // per significant byte of an EXP exponent
	Sha3WordGas          Gas // per word of SHA3 input
	CopyGas              Gas // per word of *COPY data
	MemoryGas            Gas // per word of memory growth (linear term)
	QuadCoeffDiv         Gas // divisor of the quadratic memory growth term
	LogTopicGas          Gas // per LOG topic
	LogDataGas           Gas // per byte of LOG data
	SstoreSetGas         Gas // storage write zero -> non-zero
	SstoreResetGas       Gas // any other storage write
	SstoreRefundGas      Gas // refund for clearing a non-zero slot
	CallValueTransferGas Gas // surcharge for value-bearing calls
	CallNewAccountGas    Gas // surcharge for calls creating an account
	CallStipend          Gas // free gas granted to value-bearing call targets
	SuicideRefundGas     Gas // refund for the first SELFDESTRUCT of an address
	CreateDataGas        Gas // per byte of deposited contract code

	// Structural limits.
	StackLimit     int // maximum number of stack elements
	CallDepthLimit int // maximum call-frame nesting depth
}

// HomesteadSchedule is the fee schedule of the targeted fork. Its base costs
// are the values from before the EIP-150 repricing (e.g. CALL 40, SLOAD 50);
// the 63/64 forwarding cap and the new-account charging rule for calls are
// applied by the interpreter's call handling, not encoded in this table.
var HomesteadSchedule = FeeSchedule{
	ZeroGas:    0,
	BaseGas:    2,
	VeryLowGas: 3,
	LowGas:     5,
	MidGas:     8,
	HighGas:    10,

	ExpGas:          10,
	Sha3Gas:         30,
	SloadGas:        50,
	JumpdestGas:     1,
	BalanceGas:      20,
	ExtCodeGas:      20,
	BlockhashGas:    20,
	LogGas:          375,
	CreateGas:       32000,
	CallGas:         40,
	SelfdestructGas: 0,

	ExpByteGas:           10,
	Sha3WordGas:          6,
	CopyGas:              3,
	MemoryGas:            3,
	QuadCoeffDiv:         512,
	LogTopicGas:          375,
	LogDataGas:           8,
	SstoreSetGas:         20000,
	SstoreResetGas:       5000,
	SstoreRefundGas:      15000,
	CallValueTransferGas: 9000,
	CallNewAccountGas:    25000,
	CallStipend:          2300,
	SuicideRefundGas:     24000,
	CreateDataGas:        200,

	StackLimit:     1024,
	CallDepthLimit: 1024,
}
