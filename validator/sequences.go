package validator

import (
	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidateSequences checks the increment and bounds of every sequence.
func (v *Validator) ValidateSequences(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, s := range m.Sequences() {
		if s.IncrementBy == 0 {
			return fail(relmap.SequenceIncrementZero,
				"The sequence '%s' has an increment of 0. Sequences must advance by a non-zero increment.",
				s.DisplayName())
		}
		if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
			return fail(relmap.SequenceMinGreaterThanMax,
				"The sequence '%s' has a minimum value of %d, which is greater than its maximum value of %d.",
				s.DisplayName(), *s.Min, *s.Max)
		}
		if (s.Min != nil && s.StartValue < *s.Min) || (s.Max != nil && s.StartValue > *s.Max) {
			return fail(relmap.SequenceStartOutOfRange,
				"The sequence '%s' starts at %d, which is outside of its range [%s, %s].",
				s.DisplayName(), s.StartValue, fmtPtr(s.Min), fmtPtr(s.Max))
		}
	}
	return nil
}
