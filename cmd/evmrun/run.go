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
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clevertechru/ethereumjs-vm/evm"
	"github.com/clevertechru/ethereumjs-vm/interpreter/classic"
	"github.com/clevertechru/ethereumjs-vm/processor"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
)

var RunCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Run the given byte-code in a fresh in-memory state",
	ArgsUsage: "<code>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "input",
			Usage: "hex encoded call data",
		},
		&cli.Uint64Flag{
			Name:  "gas",
			Usage: "gas budget of the run",
			Value: 1_000_000,
		},
		&cli.Uint64Flag{
			Name:  "value",
			Usage: "call value in wei",
		},
		&cli.StringFlag{
			Name:  "fork",
			Usage: "fee schedule to run with, one of: " + strings.Join(forkNames(), ", "),
			Value: "homestead",
		},
	},
}

var forks = map[string]*evm.FeeSchedule{
	"homestead": &evm.HomesteadSchedule,
}

func forkNames() []string {
	names := maps.Keys(forks)
	sort.Strings(names)
	return names
}

func doRun(context *cli.Context) error {
	code, err := decodeHex(context.Args().First())
	if err != nil {
		return fmt.Errorf("invalid code: %w", err)
	}
	if len(code) == 0 {
		return fmt.Errorf("no code given")
	}
	input, err := decodeHex(context.String("input"))
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	fees, found := forks[context.String("fork")]
	if !found {
		return fmt.Errorf("unknown fork %q, supported: %v", context.String("fork"), forkNames())
	}

	interpreter, err := classic.NewInterpreter(classic.Config{
		Fees:         fees,
		WithShaCache: true,
	})
	if err != nil {
		return err
	}

	var (
		sender    = evm.Address{0x01}
		recipient = evm.Address{0x02}
		gas       = evm.Gas(context.Uint64("gas"))
		value     = evm.NewValue(context.Uint64("value"))
	)

	state := processor.NewStateDB()
	state.SetBalance(sender, evm.NewValue(1_000_000_000))
	state.SetCode(recipient, code)

	proc := processor.NewProcessor(interpreter, state, fees, evm.BlockParameters{
		BlockNumber: 1,
		Timestamp:   time.Now().Unix(),
		GasLimit:    gas,
	}, evm.TransactionParameters{Origin: sender})

	start := time.Now()
	result, err := proc.RunCall(sender, recipient, input, value, gas)
	duration := time.Since(start)
	if err != nil {
		return err
	}

	gasUsed := gas - result.GasLeft
	rate := float64(gasUsed) / duration.Seconds()

	fmt.Printf("success:   %t\n", result.Success)
	if result.Err != nil {
		fmt.Printf("error:     %v\n", result.Err)
	}
	fmt.Printf("output:    0x%x\n", result.Output)
	fmt.Printf("gas used:  %d (%sgas/s)\n", gasUsed, unitconv.FormatPrefix(rate, unitconv.SI, 0))
	fmt.Printf("refund:    %d\n", result.GasRefund)
	for i, log := range result.Logs {
		fmt.Printf("log %d:     %v topics=%v data=0x%x\n", i, log.Address, log.Topics, log.Data)
	}
	return nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	return hex.DecodeString(s)
}
