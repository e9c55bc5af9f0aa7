// Package optimizer implements the single dead-store-elimination pass
// from spec §4.5, run to a fixpoint.
package optimizer

import "github.com/cirius-lang/cirius/internal/ir"

// Optimize removes dead stores from instrs to a fixpoint and returns a new
// slice; instrs itself is left untouched. The pass ignores side effects:
// an INPUT or CALL whose dest is never read is removed like any other
// dead store (spec §4.5).
func Optimize(instrs []ir.Instr) []ir.Instr {
	cur := instrs
	for {
		next := pass(cur)
		if len(next) == len(cur) {
			return next
		}
		cur = next
	}
}

func pass(instrs []ir.Instr) []ir.Instr {
	used := usedNames(instrs)

	kept := make([]ir.Instr, 0, len(instrs))
	for _, in := range instrs {
		if in.Dest == nil {
			kept = append(kept, in)
			continue
		}
		// FUNC_BEGIN and LABEL are structural per spec §4.5. GOTO and
		// FUNC_END are extended the same protection here: their dest slot
		// holds a control target or bookkeeping name, not a data binding
		// that dead-store elimination is meant to reclaim (see DESIGN.md).
		if in.Op == ir.FUNC_BEGIN || in.Op == ir.LABEL || in.Op == ir.GOTO || in.Op == ir.FUNC_END {
			kept = append(kept, in)
			continue
		}
		if in.Dest.IsName && used[in.Dest.Name] {
			kept = append(kept, in)
		}
	}
	return kept
}

// usedNames collects every name that appears as arg1 or arg2 anywhere in
// the instruction list (spec §4.5: "when the argument is a string, not a
// literal").
func usedNames(instrs []ir.Instr) map[string]bool {
	used := make(map[string]bool)
	mark := func(a *ir.Arg) {
		if a != nil && a.IsName {
			used[a.Name] = true
		}
	}
	for _, in := range instrs {
		mark(in.Arg1)
		mark(in.Arg2)
	}
	return used
}
