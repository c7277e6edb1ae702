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
	"testing"

	"github.com/holiman/uint256"
)

func TestStack_PushAndPopAreInverse(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	values := []uint64{1, 2, 3, 42, 1 << 63}
	for _, cur := range values {
		s.push(uint256.NewInt(cur))
	}

	if got, want := s.len(), len(values); got != want {
		t.Fatalf("unexpected stack size, want %d, got %d", want, got)
	}

	for i := len(values) - 1; i >= 0; i-- {
		if got := s.pop(); got.Uint64() != values[i] {
			t.Errorf("unexpected value popped, want %d, got %d", values[i], got.Uint64())
		}
	}

	if got := s.len(); got != 0 {
		t.Errorf("stack not empty after popping all elements, size %d", got)
	}
}

func TestStack_DupCopiesNthElement(t *testing.T) {
	for n := 0; n < 16; n++ {
		s := NewStack()
		for i := 0; i < 17; i++ {
			s.push(uint256.NewInt(uint64(i)))
		}
		want := *s.peekN(n)
		s.dup(n)
		if got := *s.peek(); got != want {
			t.Errorf("dup(%d) pushed %v, want %v", n, got, want)
		}
		if got, want := s.len(), 18; got != want {
			t.Errorf("dup(%d) results in unexpected stack size, want %d, got %d", n, want, got)
		}
		ReturnStack(s)
	}
}

func TestStack_SwapExchangesTopWithNthElement(t *testing.T) {
	for n := 1; n <= 16; n++ {
		s := NewStack()
		for i := 0; i < 17; i++ {
			s.push(uint256.NewInt(uint64(i)))
		}
		top := *s.peek()
		other := *s.peekN(n)
		s.swap(n)
		if got := *s.peek(); got != other {
			t.Errorf("swap(%d) put %v on top, want %v", n, got, other)
		}
		if got := *s.peekN(n); got != top {
			t.Errorf("swap(%d) put %v at depth %d, want %v", n, got, n, top)
		}
		ReturnStack(s)
	}
}

func TestStack_PushUndefinedReservesTopElement(t *testing.T) {
	s := NewStack()
	defer ReturnStack(s)

	s.pushUndefined().SetUint64(42)
	if got, want := s.len(), 1; got != want {
		t.Fatalf("unexpected stack size, want %d, got %d", want, got)
	}
	if got := s.peek().Uint64(); got != 42 {
		t.Errorf("unexpected top element, want 42, got %d", got)
	}
}

func TestStack_ReturnedStacksAreEmpty(t *testing.T) {
	s := NewStack()
	s.push(uint256.NewInt(12))
	ReturnStack(s)

	s = NewStack()
	defer ReturnStack(s)
	if got := s.len(); got != 0 {
		t.Errorf("stack obtained from pool is not empty, size %d", got)
	}
}

func TestCheckStackLimits_DetectsUnderflows(t *testing.T) {
	tests := map[string]struct {
		op   OpCode
		size int
		want error
	}{
		"add on empty stack":       {ADD, 0, errStackUnderflow},
		"add on one element":       {ADD, 1, errStackUnderflow},
		"add on two elements":      {ADD, 2, nil},
		"call on six elements":     {CALL, 6, errStackUnderflow},
		"call on seven elements":   {CALL, 7, nil},
		"dup16 on fifteen":         {DUP16, 15, errStackUnderflow},
		"dup16 on sixteen":         {DUP16, 16, nil},
		"swap16 on sixteen":        {SWAP16, 16, errStackUnderflow},
		"swap16 on seventeen":      {SWAP16, 17, nil},
		"push on empty stack":      {PUSH1, 0, nil},
		"stop on empty stack":      {STOP, 0, nil},
		"log4 on five elements":    {LOG4, 5, errStackUnderflow},
		"log4 on six elements":     {LOG4, 6, nil},
		"jumpdest on empty":        {JUMPDEST, 0, nil},
		"selfdestruct on empty":    {SELFDESTRUCT, 0, errStackUnderflow},
		"selfdestruct on one":      {SELFDESTRUCT, 1, nil},
		"return on single element": {RETURN, 1, errStackUnderflow},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := checkStackLimits(test.size, test.op); got != test.want {
				t.Errorf("checkStackLimits(%d, %v) = %v, want %v", test.size, test.op, got, test.want)
			}
		})
	}
}

func TestCheckStackLimits_DetectsOverflows(t *testing.T) {
	tests := map[string]struct {
		op   OpCode
		size int
		want error
	}{
		"push on full stack":       {PUSH1, maxStackSize, errStackOverflow},
		"push on almost full":      {PUSH1, maxStackSize - 1, nil},
		"dup1 on full stack":       {DUP1, maxStackSize, errStackOverflow},
		"swap1 on full stack":      {SWAP1, maxStackSize, nil},
		"add on full stack":        {ADD, maxStackSize, nil},
		"msize on full stack":      {MSIZE, maxStackSize, errStackOverflow},
		"call on full stack":       {CALL, maxStackSize, nil},
		"create on full stack":     {CREATE, maxStackSize, nil},
		"jumpdest on full stack":   {JUMPDEST, maxStackSize, nil},
		"balance on full stack":    {BALANCE, maxStackSize, nil},
		"gas on almost full stack": {GAS, maxStackSize - 1, nil},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := checkStackLimits(test.size, test.op); got != test.want {
				t.Errorf("checkStackLimits(%d, %v) = %v, want %v", test.size, test.op, got, test.want)
			}
		})
	}
}
