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

import (
	"math"
	"testing"
)

func TestSizeInWords_RoundsUpToFullWords(t *testing.T) {
	tests := []struct {
		size uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{31, 1},
		{32, 1},
		{33, 2},
		{64, 2},
		{65, 3},
		{math.MaxUint64 - 31, math.MaxUint64 / 32},
		{math.MaxUint64, math.MaxUint64/32 + 1},
	}

	for _, test := range tests {
		if got := SizeInWords(test.size); got != test.want {
			t.Errorf("SizeInWords(%d) = %d, want %d", test.size, got, test.want)
		}
	}
}

func TestIsPrecompiledContract_OnlyLowAddressRange(t *testing.T) {
	if IsPrecompiledContract(Address{}) {
		t.Errorf("zero address classified as precompiled contract")
	}
	for i := byte(1); i <= 4; i++ {
		addr := Address{19: i}
		if !IsPrecompiledContract(addr) {
			t.Errorf("address %v not classified as precompiled contract", addr)
		}
	}
	if IsPrecompiledContract(Address{19: 5}) {
		t.Errorf("address 5 classified as precompiled contract")
	}
	if IsPrecompiledContract(Address{0: 1, 19: 1}) {
		t.Errorf("high address classified as precompiled contract")
	}
}
