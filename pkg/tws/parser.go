package tws

import (
	"encoding/binary"
	"fmt"
	"sort"

	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

const fileMagic uint32 = 0x999B3335

// Parse decodes a complete TWS archive.
//
// https://www.muppetlabs.com/~breadbox/software/tworld/tworldff.html#3
func Parse(data []byte) (*Set, error) {
	need := func(n int) error {
		if len(data) < n {
			return fmt.Errorf("tws: file ends too soon")
		}
		return nil
	}

	if err := need(4); err != nil {
		return nil, err
	}
	if got := binary.LittleEndian.Uint32(data); got != fileMagic {
		return nil, fmt.Errorf("tws: invalid signature 0x%08X, not a TWS file", got)
	}
	data = data[4:]

	if err := need(1); err != nil {
		return nil, err
	}
	ruleset := level.RulesetID(data[0])
	if ruleset != level.RulesetLynx && ruleset != level.RulesetMS {
		return nil, fmt.Errorf("tws: invalid ruleset byte 0x%02X", data[0])
	}
	data = data[1:]

	set := &Set{Ruleset: ruleset}

	if err := need(2); err != nil {
		return nil, err
	}
	set.RecentLevel = binary.LittleEndian.Uint16(data)
	data = data[2:]

	if err := need(1); err != nil {
		return nil, err
	}
	extraBytes := int(data[0])
	data = data[1:]
	if err := need(extraBytes); err != nil {
		return nil, err
	}
	data = data[extraBytes:]

	firstRun := true
	for len(data) > 0 {
		var size uint32
		for size == 0 {
			if err := need(4); err != nil {
				return nil, err
			}
			size = binary.LittleEndian.Uint32(data)
			data = data[4:]
		}
		if size == 0xFFFFFFFF {
			break
		}
		if err := need(int(size)); err != nil {
			return nil, err
		}
		if size < 6 {
			break
		}

		if firstRun && size > 6 && bytesAllZero(data[:6]) {
			data = data[6:]
			if size <= 16 {
				return nil, fmt.Errorf("tws: not enough data for set name")
			}
			data = data[10:]
			size -= 16
			name := append([]byte(nil), data[:size]...)
			name[len(name)-1] = 0
			set.SetName = nulTerminated(name)
			data = data[size:]
			firstRun = false
			continue
		}

		var sol Solution
		if err := need(6); err != nil {
			return nil, err
		}
		sol.LevelNumber = binary.LittleEndian.Uint16(data)
		data = data[2:]
		copy(sol.Password[:], data[:4])
		data = data[4:]

		if size == 6 {
			set.Solutions = append(set.Solutions, sol)
			firstRun = false
			continue
		}

		size -= 6
		if err := need(10); err != nil {
			return nil, err
		}
		sol.Attempted = true
		sol.OtherFlags = data[0]
		slideStep := data[1]
		sol.SlideDirection = tile.Direction(slideStep & 0b111)
		sol.StepValue = (slideStep >> 3) & 0b11
		sol.PRNGSeed = binary.LittleEndian.Uint32(data[2:6])
		sol.NumTicks = binary.LittleEndian.Uint32(data[6:10])
		data = data[10:]
		size -= 10

		inputs, err := decodeInputStream(data[:size], size, sol.NumTicks)
		if err != nil {
			return nil, fmt.Errorf("tws: level %d: %w", sol.LevelNumber, err)
		}
		sol.Inputs = inputs
		data = data[size:]

		set.Solutions = append(set.Solutions, sol)
		firstRun = false
	}

	sort.SliceStable(set.Solutions, func(i, j int) bool {
		return set.Solutions[i].LevelNumber < set.Solutions[j].LevelNumber
	})

	return set, nil
}

func bytesAllZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func nulTerminated(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
