package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/metadata"
)

func customer(b *metadata.Builder) *metadata.EntityBuilder {
	e := b.Entity("Customer").ToTable("Customers", "")
	e.Property("Id", metadata.TypeInt32)
	e.Property("Name", metadata.TypeString)
	e.Property("Phone", metadata.TypeString)
	e.HasKey("Id")
	return e
}

func TestMappingFragments(t *testing.T) {
	tests := []struct {
		name      string
		configure func(b *metadata.Builder)
		code      relmap.Code
		contains  string
	}{
		{
			name: "split across tables",
			configure: func(b *metadata.Builder) {
				customer(b).SplitToTable("CustomerPhones", "", "Phone")
			},
		},
		{
			name: "split across views",
			configure: func(b *metadata.Builder) {
				customer(b).ToView("CustomerView", "").SplitToView("CustomerPhoneView", "", "Phone")
			},
		},
		{
			name: "type in a hierarchy",
			configure: func(b *metadata.Builder) {
				_, cat, _ := animals(b)
				cat.SplitToTable("CatLives", "", "Lives")
			},
			code: relmap.EntitySplittingHierarchy,
		},
		{
			name: "fragment without main table",
			configure: func(b *metadata.Builder) {
				customer(b).ToTable("", "").SplitToTable("CustomerPhones", "", "Phone")
			},
			code: relmap.EntitySplittingUnmappedMainFragment,
		},
		{
			name: "fragment on the main table",
			configure: func(b *metadata.Builder) {
				customer(b).SplitToTable("Customers", "", "Phone")
			},
			code: relmap.EntitySplittingConflictingMainFragment,
		},
		{
			name: "fragment with only key columns",
			configure: func(b *metadata.Builder) {
				customer(b).SplitToTable("CustomerKeys", "", "Id")
			},
			code:     relmap.EntitySplittingMissingProperties,
			contains: "'CustomerKeys'",
		},
		{
			name: "everything split out",
			configure: func(b *metadata.Builder) {
				customer(b).SplitToTable("CustomerDetails", "", "Name", "Phone")
			},
			code:     relmap.EntitySplittingMissingPropertiesMainFragment,
			contains: "'Customers'",
		},
		{
			name: "principal on another main table",
			configure: func(b *metadata.Builder) {
				customer(b).SplitToTable("CustomerPhones", "", "Phone")
				e := b.Entity("Profile").ToTable("CustomerPhones", "")
				e.Property("Id", metadata.TypeInt32)
				e.Property("Bio", metadata.TypeString)
				e.HasKey("Id")
				e.HasForeignKey("Customer", "Id").Unique().RequiredDependent()
				e.SplitToTable("ProfileBios", "", "Bio")
				e.Property("Avatar", metadata.TypeBytes)
			},
			code: relmap.EntitySplittingUnmatchedMainTableSplitting,
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
