package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

func TestInheritanceMapping(t *testing.T) {
	tests := []struct {
		name      string
		configure func(b *metadata.Builder)
		code      relmap.Code
		contains  string
	}{
		{
			name: "tpc siblings sharing a table",
			configure: func(b *metadata.Builder) {
				tpc(b)
				b.Entity("Cat").ToTable("Shared", "")
				b.Entity("Dog").ToTable("Shared", "")
			},
			code:     relmap.NonTphTableClash,
			contains: "'Dog' is mapped to the table 'Shared' which is also mapped to 'Cat'",
		},
		{
			name: "tpt types sharing a view",
			configure: func(b *metadata.Builder) {
				tpc(b).UseStrategy(metadata.TPT)
				b.Entity("Cat").ToView("Pets", "")
				b.Entity("Dog").ToView("Pets", "")
			},
			code: relmap.NonTphViewClash,
		},
		{
			name: "tpt inferred from tables",
			configure: func(b *metadata.Builder) {
				animal := b.Entity("Animal")
				animal.Property("Id", metadata.TypeInt32)
				animal.HasKey("Id")
				b.Entity("Cat").HasBase("Animal").ToTable("Cats", "")
			},
		},
		{
			name: "tph without discriminator",
			configure: func(b *metadata.Builder) {
				animal := b.Entity("Animal")
				animal.Property("Id", metadata.TypeInt32)
				animal.HasKey("Id")
				b.Entity("Cat").HasBase("Animal")
			},
			code: relmap.NoDiscriminatorProperty,
		},
		{
			name: "default discriminator values from equal short names",
			configure: func(b *metadata.Builder) {
				animals(b)
				b.Entity("Zoo.Cat").HasBase("Animal")
			},
			code:     relmap.EntityShortNameNotUnique,
			contains: "'Cat'",
		},
		{
			name: "default discriminator values from equal short names at different depths",
			configure: func(b *metadata.Builder) {
				animals(b)
				b.Entity("Zoo.Cat").HasBase("Cat")
			},
			code:     relmap.EntityShortNameNotUnique,
			contains: "'Zoo.Cat'",
		},
		{
			name: "explicit discriminator value equal to another",
			configure: func(b *metadata.Builder) {
				_, _, dog := animals(b)
				dog.HasDiscriminatorValue("Cat")
			},
			code: relmap.DuplicateDiscriminatorValue,
		},
		{
			name: "unique discriminator values",
			configure: func(b *metadata.Builder) {
				animals(b)
				b.Entity("Zoo.Cat").HasBase("Animal").HasDiscriminatorValue("WildCat")
			},
		},
		{
			name: "abstract types need no value",
			configure: func(b *metadata.Builder) {
				animal, _, _ := animals(b)
				animal.Abstract()
			},
		},
		{
			name: "incompatible discriminator value",
			configure: func(b *metadata.Builder) {
				_, cat, _ := animals(b)
				cat.HasDiscriminatorValue(3)
			},
			code: relmap.DiscriminatorValueIncompatible,
		},
		{
			name: "tph derived type with its own table",
			configure: func(b *metadata.Builder) {
				_, cat, _ := animals(b)
				cat.ToTable("Cats", "")
			},
			code: relmap.TphTableMismatch,
		},
		{
			name: "tph derived type with its own view",
			configure: func(b *metadata.Builder) {
				animal, cat, _ := animals(b)
				animal.ToView("Animals", "")
				cat.ToView("Cats", "")
			},
			code: relmap.TphViewMismatch,
		},
		{
			name: "discriminator with tpt",
			configure: func(b *metadata.Builder) {
				animal, _, _ := animals(b)
				animal.UseStrategy(metadata.TPT)
			},
			code: relmap.NonTphMappingStrategy,
		},
		{
			name: "strategy on derived type",
			configure: func(b *metadata.Builder) {
				_, cat, _ := animals(b)
				cat.UseStrategy(metadata.TPC)
			},
			code: relmap.DerivedStrategy,
		},
		{
			name: "unknown strategy",
			configure: func(b *metadata.Builder) {
				blog(b).UseStrategy("TPX")
			},
			code: relmap.InvalidMappingStrategy,
		},
		{
			name: "abstract tpc type mapped to a table",
			configure: func(b *metadata.Builder) {
				tpc(b).Abstract().ToTable("Animals", "")
			},
			code: relmap.AbstractTpc,
		},
		{
			name: "tpc type with derived types sharing its table",
			configure: func(b *metadata.Builder) {
				tpc(b)
				e := b.Entity("AnimalDetails").ToTable("Animal", "")
				e.Property("Id", metadata.TypeInt32)
				e.Property("Notes", metadata.TypeString)
				e.HasKey("Id")
				e.HasForeignKey("Animal", "Id").Unique().RequiredDependent()
			},
			code: relmap.TpcTableSharing,
		},
		{
			name: "tpc type with derived types sharing its principal's table",
			configure: func(b *metadata.Builder) {
				owner := b.Entity("Owner").ToTable("Animal", "")
				owner.Property("Id", metadata.TypeInt32)
				owner.Property("Name", metadata.TypeString)
				owner.HasKey("Id")
				tpc(b).HasForeignKey("Owner", "Id").Unique().RequiredDependent()
			},
			code: relmap.TpcTableSharingDependent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validate(t, build(t, tt.configure))
			if tt.code == "" {
				require.NoError(t, err)
				return
			}
			requireCode(t, err, tt.code)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestTpcValueGeneration(t *testing.T) {
	m := build(t, func(b *metadata.Builder) {
		tpc(b).Property("Id", metadata.TypeInt32).ValueGenerated(metadata.OnAdd)
	})
	events, err := validate(t, m)
	require.NoError(t, err)
	assert.Equal(t, []diagnostics.EventID{diagnostics.TpcStoreGeneratedIdentityWarning}, eventIDs(events))

	m = build(t, func(b *metadata.Builder) {
		tpc(b).Property("Id", metadata.TypeInt32).HasDefaultValueSQL("NEXT VALUE FOR AnimalIds")
	})
	events, err = validate(t, m)
	require.NoError(t, err)
	assert.Empty(t, events)
}
