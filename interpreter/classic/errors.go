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

import "github.com/clevertechru/ethereumjs-vm/evm"

// The violations surfaced by instruction handlers. Offset or length values
// beyond the addressable range are treated as out-of-gas since no gas level
// could ever pay for the implied memory expansion.
const (
	errOutOfGas       = evm.ErrOutOfGas
	errStackOverflow  = evm.ErrStackOverflow
	errStackUnderflow = evm.ErrStackUnderflow
	errInvalidJump    = evm.ErrInvalidJump
	errInvalidOpCode  = evm.ErrInvalidOpCode
)
