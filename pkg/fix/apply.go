package fix

import "slices"

// Apply applies replacements to content and returns the new content together
// with the original start offset of every applied replacement, ascending.
//
// Replacements are spliced from the highest start offset down, so offsets of
// the ones not yet applied stay valid. Invalid or conflicting replacements
// reject the whole set; content is never partially rewritten.
func Apply(content []byte, reps []Replacement) ([]byte, []int, error) {
	prepared, err := Prepare(reps, len(content))
	if err != nil {
		return nil, nil, err
	}
	if len(prepared) == 0 {
		return content, nil, nil
	}

	out := slices.Clone(content)
	applied := make([]int, 0, len(prepared))
	for _, rep := range prepared {
		out = slices.Replace(out, rep.StartOffset, rep.EndOffset, []byte(rep.NewText)...)
		applied = append(applied, rep.StartOffset)
	}

	slices.Reverse(applied)
	return out, applied, nil
}
