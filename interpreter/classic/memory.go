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
	"fmt"
	"math"

	"github.com/clevertechru/ethereumjs-vm/evm"
	"github.com/holiman/uint256"
)

// Memory is the byte-addressable scratch space of a single frame. It is
// logically infinite and zero-initialized; the backing store grows in
// 32-byte words as higher offsets are touched. Growth is billed against the
// frame's gas through the cumulative cost model: the store remembers the
// total expansion gas charged so far and each growth step bills only the
// difference to the new total.
type Memory struct {
	store             []byte
	currentMemoryCost evm.Gas
}

func NewMemory() *Memory {
	return &Memory{}
}

func toValidMemorySize(size uint64) uint64 {
	fullWordsSize := evm.SizeInWords(size) * 32
	if size != 0 && fullWordsSize < size {
		return math.MaxUint64
	}
	return fullWordsSize
}

// Maximum memory size for which expansion costs are computed; beyond it the
// square of the word count no longer fits into 64 bits, and larger sizes
// are billed as unpayable.
const maxMemoryExpansionSize = 0x1FFFFFFFE0

// expansionCosts computes the gas fee for growing the memory to the given
// size, following the quadratic schedule of the fee configuration.
func (m *Memory) expansionCosts(size uint64, fees *evm.FeeSchedule) evm.Gas {
	if m.length() >= size {
		return 0
	}
	size = toValidMemorySize(size)

	if size > maxMemoryExpansionSize {
		return evm.Gas(math.MaxInt64)
	}

	// the square is formed in uint64; in the signed gas type it would
	// overflow for sizes close to the maximum
	words := evm.SizeInWords(size)
	newCosts := fees.MemoryGas*evm.Gas(words) + evm.Gas(words*words/uint64(fees.QuadCoeffDiv))
	return newCosts - m.currentMemoryCost
}

// expandMemory tries to expand memory to hold size bytes starting at offset.
// If the memory is already large enough or size is 0, it does nothing. If
// there is not enough gas in the context or an overflow occurs when adding
// offset and size, it returns an error.
func (m *Memory) expandMemory(offset, size uint64, c *context) error {
	if size == 0 {
		return nil
	}
	needed := offset + size
	// check overflow
	if needed < offset {
		return errOutOfGas
	}
	if m.length() < needed {
		fee := m.expansionCosts(needed, c.fees)
		if err := c.useGas(fee); err != nil {
			return err
		}
		m.expandMemoryWithoutCharging(needed, c.fees)
	}

	return nil
}

// expandMemoryWithoutCharging expands the memory to the given size while
// only tracking, not billing, the accumulated expansion cost.
func (m *Memory) expandMemoryWithoutCharging(needed uint64, fees *evm.FeeSchedule) {
	needed = toValidMemorySize(needed)
	size := m.length()
	if size < needed {
		m.currentMemoryCost += m.expansionCosts(needed, fees)
		m.store = append(m.store, make([]byte, needed-size)...)
	}
}

func (m *Memory) length() uint64 {
	return uint64(len(m.store))
}

func (m *Memory) setByte(offset uint64, value byte, c *context) error {
	err := m.expandMemory(offset, 1, c)
	if err != nil {
		return err
	}

	if m.length() < offset+1 {
		return fmt.Errorf("memory too small, size %d, attempted to write at position %d", m.length(), offset)
	}
	m.store[offset] = value
	return nil
}

func (m *Memory) setWord(offset uint64, value *uint256.Int, c *context) error {
	err := m.expandMemory(offset, 32, c)
	if err != nil {
		return err
	}

	if m.length() < offset+32 {
		return fmt.Errorf("memory too small, size %d, attempted to write 32 byte at position %d", m.length(), offset)
	}

	data := value.Bytes32()
	copy(m.store[offset:offset+32], data[:])
	return nil
}

// set copies the given bytes into memory starting at offset, expanding and
// billing as needed.
func (m *Memory) set(offset uint64, value []byte, c *context) error {
	size := uint64(len(value))
	if size == 0 {
		return nil
	}
	err := m.expandMemory(offset, size, c)
	if err != nil {
		return err
	}
	if offset+size < offset {
		return errOutOfGas
	}
	if offset+size > m.length() {
		return fmt.Errorf("memory too small, size %d, attempted to write %d bytes at %d", m.length(), size, offset)
	}
	copy(m.store[offset:offset+size], value)
	return nil
}

// getSlice obtains a slice of size bytes from the memory at the given offset.
// The returned slice is backed by the memory's internal data. Updates to the
// slice will thus affect the memory state. This connection is invalidated by
// any subsequent memory operation that may change the size of the memory.
func (m *Memory) getSlice(offset, size uint64, c *context) ([]byte, error) {
	err := m.expandMemory(offset, size, c)
	if err != nil {
		return nil, err
	}
	// since memory does not expand on size 0 independently of the offset,
	// we need to prevent out of bounds access
	if size == 0 {
		return nil, nil
	}
	return m.store[offset : offset+size], nil
}

// getWord reads a 32-byte word from the memory at the given offset and
// stores it in the provided target. Expands memory as needed and charges
// for it.
func (m *Memory) getWord(offset uint64, target *uint256.Int, c *context) error {
	data, err := m.getSlice(offset, 32, c)
	if err != nil {
		return err
	}
	target.SetBytes32(data)
	return nil
}

// copyData copies data from the memory, starting at the given offset, to the
// target slice, padding with zeros if offset+(target length) is greater than
// the memory size.
func (m *Memory) copyData(offset uint64, target []byte) {
	if m.length() < offset {
		copy(target, make([]byte, len(target)))
		return
	}

	// Copy what is available.
	covered := copy(target, m.store[offset:])

	// Pad the rest
	if covered < len(target) {
		copy(target[covered:], make([]byte, len(target)-covered))
	}
}
