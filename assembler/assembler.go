// Package assembler turns symbolic assembly into the final byte sequence.
// Labels are resolved to PC-relative displacements; every symbolic jump
// expands into a branch plus its delay-slot NOP, which shifts later code
// down and is compensated by relocating the affected offsets.
package assembler

import (
	"fmt"

	"github.com/Lol3rrr/prizm-sub000/sh"
)

type entryKind uint8

const (
	entryInstruction entryKind = iota
	entryJump                  // expands to BRA + NOP
	entryCall                  // expands to BSR + NOP
)

// entry is one element of the intermediate list: either a real
// instruction or a pending jump with its byte offset and target.
type entry struct {
	kind   entryKind
	instr  sh.Instruction
	start  uint32 // byte offset of the branch itself
	target uint32 // byte offset of the destination
}

// Assemble resolves all symbolic instructions and serialises the program.
// It fails on a jump or call to a label that is never defined.
func Assemble(instructions []sh.Instruction) ([]byte, error) {
	targets := findLabels(instructions)

	entries, err := toEntries(instructions, targets)
	if err != nil {
		return nil, err
	}

	return emit(expand(entries)), nil
}

// findLabels maps every label to its byte offset in the label-free
// instruction list. Labels occupy no bytes themselves.
func findLabels(instructions []sh.Instruction) map[string]uint32 {
	result := make(map[string]uint32)

	var offset uint32
	for _, instr := range instructions {
		if instr.Op == sh.OpLabel {
			result[instr.Name] = offset
		} else {
			offset += 2
		}
	}

	return result
}

// toEntries drops the labels and rewrites the symbolic jumps into entries
// carrying their own offset and the resolved target offset.
func toEntries(instructions []sh.Instruction, targets map[string]uint32) ([]entry, error) {
	var result []entry

	for _, instr := range instructions {
		switch instr.Op {
		case sh.OpLabel:
			// Consumed by findLabels.
		case sh.OpJumpToLabel, sh.OpCallToLabel:
			target, ok := targets[instr.Name]
			if !ok {
				return nil, fmt.Errorf("jump to undefined label %q", instr.Name)
			}
			kind := entryJump
			if instr.Op == sh.OpCallToLabel {
				kind = entryCall
			}
			result = append(result, entry{
				kind:   kind,
				start:  uint32(len(result)) * 2,
				target: target,
			})
		default:
			result = append(result, entry{kind: entryInstruction, instr: instr})
		}
	}

	return result, nil
}

// branchGrowth is the extra room a resolved jump needs: the delay-slot NOP
// inserted after the branch.
const branchGrowth = 2

// expand accounts for the delay-slot NOP each jump entry gains. Inserting
// two bytes at a jump shifts everything behind it down, so every start and
// target strictly beyond the insertion point moves by two; walking front
// to back keeps the running offset consistent with the final layout.
func expand(entries []entry) []entry {
	var offset uint32
	for i := range entries {
		if entries[i].kind != entryInstruction {
			relocate(entries, offset, branchGrowth)
			offset += branchGrowth
		}
		offset += 2
	}
	return entries
}

// relocate shifts all jump offsets strictly beyond the insertion point.
func relocate(entries []entry, insertAt, by uint32) {
	for i := range entries {
		if entries[i].kind == entryInstruction {
			continue
		}
		if entries[i].start > insertAt {
			entries[i].start += by
		}
		if entries[i].target > insertAt {
			entries[i].target += by
		}
	}
}

// emit serialises the entries, materialising each jump as its branch
// instruction followed by the delay-slot NOP.
func emit(entries []entry) []byte {
	result := make([]byte, 0, len(entries)*2)

	append16 := func(instr sh.Instruction) {
		encoded := instr.Encode()
		result = append(result, encoded[0], encoded[1])
	}

	for _, e := range entries {
		switch e.kind {
		case entryJump:
			append16(sh.BRA(displacement(e.start, e.target)))
			append16(sh.Nop())
		case entryCall:
			append16(sh.BSR(displacement(e.start, e.target)))
			append16(sh.Nop())
		default:
			append16(e.instr)
		}
	}

	return result
}

// displacement converts a branch position and target into the half-word
// displacement of BRA/BSR: (target - (start + 4)) / 2, in two's complement
// for backward jumps.
func displacement(start, target uint32) uint16 {
	base := start + 4
	if target < base {
		delta := (base - target) / 2
		return uint16((delta ^ 0xffffffff) + 1)
	}
	return uint16((target - base) / 2)
}
