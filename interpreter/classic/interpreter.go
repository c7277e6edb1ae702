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
	"errors"
	"fmt"

	"github.com/clevertechru/ethereumjs-vm/evm"
)

// status is an enumeration of the execution state of an interpreter run.
type status byte

const (
	statusRunning        status = iota // < all fine, ops are processed
	statusStopped                      // < execution stopped with a STOP
	statusReturned                     // < execution stopped with a RETURN
	statusSelfDestructed               // < execution stopped with a SELFDESTRUCT
	statusFailed                       // < execution stopped with an execution violation
)

// Config is the set of configuration options of an interpreter instance.
type Config struct {
	AnalysisConfig
	// Fees is the fee schedule of the targeted fork. If nil, the Homestead
	// schedule is used.
	Fees *evm.FeeSchedule
	// WithShaCache enables caching of SHA3 hashes of frequently re-hashed
	// single-word inputs.
	WithShaCache bool
}

type vm struct {
	config   Config
	fees     *evm.FeeSchedule
	static   [numOpCodes]evm.Gas
	analyzer *analyzer
}

// NewInterpreter creates an interpreter instance for the fork described by
// the configured fee schedule. Instances are thread-safe; multiple runs may
// be conducted in parallel.
func NewInterpreter(config Config) (evm.Interpreter, error) {
	analyzer, err := newAnalyzer(config.AnalysisConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create code analyzer: %v", err)
	}
	fees := config.Fees
	if fees == nil {
		fees = &evm.HomesteadSchedule
	}
	return &vm{
		config:   config,
		fees:     fees,
		static:   newStaticGasPrices(fees),
		analyzer: analyzer,
	}, nil
}

func (v *vm) Run(params evm.Parameters) (evm.Result, error) {
	// Don't bother with the execution if there's no code.
	if len(params.Code) == 0 {
		return evm.Result{
			Success:        true,
			GasLeft:        params.Gas,
			SelfDestructed: params.SelfDestructed,
		}, nil
	}

	selfDestructed := params.SelfDestructed
	if selfDestructed == nil {
		selfDestructed = map[evm.Address]evm.Address{}
	}

	// Set up the execution context.
	ctxt := context{
		params:         params,
		context:        params.Context,
		fees:           v.fees,
		static:         &v.static,
		code:           params.Code,
		jumpDests:      v.analyzer.jumpDests(params.Code, params.CodeHash),
		contract:       loadAccountView(params.Context, params.Recipient),
		gas:            params.Gas,
		stack:          NewStack(),
		memory:         NewMemory(),
		selfDestructed: selfDestructed,
		withShaCache:   v.config.WithShaCache,
	}
	defer ReturnStack(ctxt.stack)

	status, err := steps(&ctxt, false)
	if err != nil {
		if isExecutionViolation(err) {
			return evm.Result{
				Success: false,
				Err:     ctxt.locate(err),
			}, nil
		}
		// internal failures, e.g. of the frame runner, are not valid
		// execution states and are passed on unchanged
		return evm.Result{}, err
	}

	return generateResult(status, &ctxt)
}

// context is the execution environment of an interpreter run, covering the
// full state of a single frame: input parameters, the executed code, and the
// internal execution state such as the program counter, stack, memory, gas
// levels, and accumulated side effects. For each frame a new context is
// created.
type context struct {
	// Inputs
	params  evm.Parameters
	context evm.RunContext
	fees    *evm.FeeSchedule
	static  *[numOpCodes]evm.Gas
	code    evm.Code

	// Execution state
	pc        int32
	gas       evm.Gas
	refund    evm.Gas
	stack     *stack
	memory    *Memory
	jumpDests jumpDests

	// contract is the cached view of the account being executed. It is
	// persisted to the state manager's cache before a child frame is
	// spawned and refreshed after writes that may invalidate it.
	contract evm.Account

	// Accumulated side effects
	logs           []evm.Log
	selfDestructed map[evm.Address]evm.Address

	// Intermediate data
	returnData []byte // < the result of a RETURN

	// Configuration flags
	withShaCache bool
}

// useGas reduces the gas level by the given amount. If the gas level drops
// below zero, the frame is out of gas and execution must stop.
func (c *context) useGas(amount evm.Gas) error {
	if c.gas < 0 || amount < 0 || c.gas < amount {
		return errOutOfGas
	}
	c.gas -= amount
	return nil
}

// locate decorates an execution violation with the position it occurred at,
// identified by code hash, executing address, and program counter.
func (c *context) locate(err error) error {
	codeHash := c.params.CodeHash
	if codeHash == nil {
		hash := Keccak256(c.code)
		codeHash = &hash
	}
	return fmt.Errorf("%w at %x/%v:%d", err, *codeHash, c.params.Recipient, c.pc)
}

// loadAccountView obtains the view of an account as seen by a new frame,
// preferring the transaction's account cache over the backing state.
func loadAccountView(ctx evm.RunContext, addr evm.Address) evm.Account {
	if account, found := ctx.CacheGet(addr); found {
		return account
	}
	return ctx.GetAccount(addr)
}

// isExecutionViolation returns true for errors describing issues of the
// executed code rather than of the interpreter infrastructure.
func isExecutionViolation(err error) bool {
	for _, cur := range []error{
		errOutOfGas,
		errStackUnderflow,
		errStackOverflow,
		errInvalidJump,
		errInvalidOpCode,
	} {
		if errors.Is(err, cur) {
			return true
		}
	}
	return false
}

func generateResult(status status, ctxt *context) (evm.Result, error) {
	switch status {
	case statusStopped, statusSelfDestructed:
		return evm.Result{
			Success:        true,
			GasLeft:        ctxt.gas,
			GasRefund:      ctxt.refund,
			Logs:           ctxt.logs,
			SelfDestructed: ctxt.selfDestructed,
		}, nil
	case statusReturned:
		return evm.Result{
			Success:        true,
			Output:         ctxt.returnData,
			GasLeft:        ctxt.gas,
			GasRefund:      ctxt.refund,
			Logs:           ctxt.logs,
			SelfDestructed: ctxt.selfDestructed,
		}, nil
	default:
		return evm.Result{}, fmt.Errorf("unexpected error in interpreter, unknown status: %v", status)
	}
}

// steps executes the code in the given context. If oneStepOnly is true, only
// the instruction pointed to by the program counter will be executed. The
// returned error reports any execution violation of the running code, i.e.
// out of gas, a stack boundary issue, an invalid jump, or an invalid
// instruction, as well as internal failures of the frame runner.
func steps(c *context, oneStepOnly bool) (status, error) {
	status := statusRunning
	for status == statusRunning {
		if int(c.pc) >= len(c.code) {
			return statusStopped, nil
		}

		op := OpCode(c.code[c.pc])

		// Check stack boundaries for every instruction.
		if err := checkStackLimits(c.stack.len(), op); err != nil {
			return status, err
		}

		// Consume the static gas price of the instruction before execution.
		if err := c.useGas(c.static[op]); err != nil {
			return status, err
		}

		var err error

		switch {
		case op.IsPush():
			opPush(c, op.PushBytes())
		case DUP1 <= op && op <= DUP16:
			opDup(c, int(op)-int(DUP1)+1)
		case SWAP1 <= op && op <= SWAP16:
			opSwap(c, int(op)-int(SWAP1)+1)
		case LOG0 <= op && op <= LOG4:
			err = opLog(c, int(op)-int(LOG0))
		default:
			switch op {
			case STOP:
				status = statusStopped
			case ADD:
				opAdd(c)
			case MUL:
				opMul(c)
			case SUB:
				opSub(c)
			case DIV:
				opDiv(c)
			case SDIV:
				opSDiv(c)
			case MOD:
				opMod(c)
			case SMOD:
				opSMod(c)
			case ADDMOD:
				opAddMod(c)
			case MULMOD:
				opMulMod(c)
			case EXP:
				err = opExp(c)
			case SIGNEXTEND:
				opSignExtend(c)
			case LT:
				opLt(c)
			case GT:
				opGt(c)
			case SLT:
				opSlt(c)
			case SGT:
				opSgt(c)
			case EQ:
				opEq(c)
			case ISZERO:
				opIszero(c)
			case AND:
				opAnd(c)
			case OR:
				opOr(c)
			case XOR:
				opXor(c)
			case NOT:
				opNot(c)
			case BYTE:
				opByte(c)
			case SHA3:
				err = opSha3(c)
			case ADDRESS:
				opAddress(c)
			case BALANCE:
				opBalance(c)
			case ORIGIN:
				opOrigin(c)
			case CALLER:
				opCaller(c)
			case CALLVALUE:
				opCallvalue(c)
			case CALLDATALOAD:
				opCallDataload(c)
			case CALLDATASIZE:
				opCallDatasize(c)
			case CALLDATACOPY:
				err = genericDataCopy(c, c.params.Input)
			case CODESIZE:
				opCodeSize(c)
			case CODECOPY:
				err = genericDataCopy(c, c.code)
			case GASPRICE:
				opGasPrice(c)
			case EXTCODESIZE:
				opExtcodesize(c)
			case EXTCODECOPY:
				err = opExtCodeCopy(c)
			case BLOCKHASH:
				opBlockhash(c)
			case COINBASE:
				opCoinbase(c)
			case TIMESTAMP:
				opTimestamp(c)
			case NUMBER:
				opNumber(c)
			case DIFFICULTY:
				opDifficulty(c)
			case GASLIMIT:
				opGasLimit(c)
			case POP:
				opPop(c)
			case MLOAD:
				err = opMload(c)
			case MSTORE:
				err = opMstore(c)
			case MSTORE8:
				err = opMstore8(c)
			case SLOAD:
				opSload(c)
			case SSTORE:
				err = opSstore(c)
			case JUMP:
				err = opJump(c)
			case JUMPI:
				err = opJumpi(c)
			case PC:
				opPc(c)
			case MSIZE:
				opMsize(c)
			case GAS:
				opGas(c)
			case JUMPDEST:
				// nothing
			case RETURN:
				err = opEndWithResult(c)
				status = statusReturned
			case CREATE:
				err = genericCreate(c)
			case CALL:
				err = genericCall(c, evm.Call)
			case CALLCODE:
				err = genericCall(c, evm.CallCode)
			case DELEGATECALL:
				err = genericCall(c, evm.DelegateCall)
			case SELFDESTRUCT:
				status, err = opSelfdestruct(c)
			default:
				err = errInvalidOpCode
			}
		}

		if err != nil {
			return status, err
		}

		c.pc++

		if oneStepOnly {
			return status, nil
		}
	}
	return status, nil
}
