// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"

	"github.com/clevertechru/ethereumjs-vm/interpreter/classic"
	"github.com/urfave/cli/v2"
)

var DisasmCmd = cli.Command{
	Action:    doDisasm,
	Name:      "disasm",
	Usage:     "Print a disassembly of the given byte-code",
	ArgsUsage: "<code>",
}

func doDisasm(context *cli.Context) error {
	code, err := decodeHex(context.Args().First())
	if err != nil {
		return fmt.Errorf("invalid code: %w", err)
	}

	for i := 0; i < len(code); i++ {
		op := classic.OpCode(code[i])
		if op.IsPush() {
			n := op.PushBytes()
			end := i + 1 + n
			if end > len(code) {
				end = len(code)
			}
			fmt.Printf("%5d: %v 0x%x\n", i, op, code[i+1:end])
			i += n
			continue
		}
		fmt.Printf("%5d: %v\n", i, op)
	}
	return nil
}
