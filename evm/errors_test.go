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
	"errors"
	"fmt"
	"testing"
)

func TestConstError_Error(t *testing.T) {

	const myError = ConstError("this is a constant error")

	got := myError.Error()
	want := "this is a constant error"
	if want != got {
		t.Errorf("unexpected print of error, wanted %s, got %s", want, got)
	}

	if !errors.Is(myError, ConstError("this is a constant error")) {
		t.Errorf("errors.Is does not match identical const errors")
	}
}

func TestConstError_WrappedErrorsAreDetected(t *testing.T) {
	wrapped := fmt.Errorf("%w at position 4", ErrOutOfGas)
	if !errors.Is(wrapped, ErrOutOfGas) {
		t.Errorf("wrapped error not detected as out-of-gas")
	}
	if errors.Is(wrapped, ErrInvalidJump) {
		t.Errorf("wrapped error wrongly detected as invalid jump")
	}
}
