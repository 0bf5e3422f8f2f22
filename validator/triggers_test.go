package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

func TestTriggers(t *testing.T) {
	t.Run("on the entity table", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) { blog(b).HasTrigger("Blog_Audit") })
		events, err := validate(t, m)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("on a table fragment", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			c := customer(b).SplitToTable("CustomerPhones", "", "Phone")
			c.HasTrigger("Phone_Audit").Table = &metadata.ObjectName{Name: "CustomerPhones"}
		})
		_, err := validate(t, m)
		require.NoError(t, err)
	})

	t.Run("on another table", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			blog(b).HasTrigger("Blog_Audit").Table = &metadata.ObjectName{Name: "Posts"}
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.TriggerWithMismatchedTable)
		assert.Contains(t, err.Error(), "'Posts'")
	})

	t.Run("unmapped entity type", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			blog(b).ToTable("", "").ToView("BlogView", "").HasTrigger("Blog_Audit")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.TriggerOnUnmappedEntityType)
	})

	t.Run("derived tph type", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			_, cat, _ := animals(b)
			cat.HasTrigger("Cat_Audit")
		})
		events, err := validate(t, m)
		require.NoError(t, err)
		assert.Equal(t, []diagnostics.EventID{diagnostics.TriggerOnNonRootTphEntity}, eventIDs(events))
	})
}

func TestSequences(t *testing.T) {
	ptr := func(v int64) *int64 { return &v }
	tests := []struct {
		name string
		seq  *metadata.Sequence
		code relmap.Code
	}{
		{
			name: "valid",
			seq:  &metadata.Sequence{Name: "OrderNumbers", Type: metadata.TypeInt64, StartValue: 1000, IncrementBy: 1, Min: ptr(1000)},
		},
		{
			name: "zero increment",
			seq:  &metadata.Sequence{Name: "OrderNumbers", Type: metadata.TypeInt64, StartValue: 1},
			code: relmap.SequenceIncrementZero,
		},
		{
			name: "inverted bounds",
			seq:  &metadata.Sequence{Name: "OrderNumbers", Type: metadata.TypeInt64, IncrementBy: 1, Min: ptr(10), Max: ptr(1)},
			code: relmap.SequenceMinGreaterThanMax,
		},
		{
			name: "start below minimum",
			seq:  &metadata.Sequence{Name: "OrderNumbers", Type: metadata.TypeInt64, StartValue: 1, IncrementBy: 1, Min: ptr(10)},
			code: relmap.SequenceStartOutOfRange,
		},
		{
			name: "start above maximum",
			seq:  &metadata.Sequence{Name: "OrderNumbers", Type: metadata.TypeInt64, StartValue: 100, IncrementBy: -1, Max: ptr(10)},
			code: relmap.SequenceStartOutOfRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(t, func(b *metadata.Builder) { b.Sequence(tt.seq) })
			_, err := validate(t, m)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}
			requireCode(t, err, tt.code)
		})
	}
}
