package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/metadata"
)

func TestDbFunctions(t *testing.T) {
	tests := []struct {
		name      string
		configure func(b *metadata.Builder)
		code      relmap.Code
		contains  string
	}{
		{
			name: "scalar function",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{
					Name: "BlogRating", Scalar: true, ReturnStoreType: "int",
					Parameters: []*metadata.DbFunctionParameter{{Name: "blogId", Type: metadata.TypeInt32}},
				})
			},
		},
		{
			name: "entity mapped to a table-valued function",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{Name: "GetBlogs", ReturnEntity: "Blog"})
				blog(b).ToFunction("GetBlogs")
			},
		},
		{
			name: "scalar without store type",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{Name: "BlogRating", Scalar: true})
			},
			code: relmap.DbFunctionInvalidReturnType,
		},
		{
			name: "unknown return entity",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{Name: "GetPosts", ReturnEntity: "Post"})
			},
			code:     relmap.DbFunctionInvalidReturnEntityType,
			contains: "'Post'",
		},
		{
			name: "owned return entity",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{Name: "GetAddresses", ReturnEntity: "Order.Shipping#Address"})
				address(jsonOrder(b).OwnsOne("Shipping", "Address"))
			},
			code: relmap.DbFunctionInvalidReturnEntityType,
		},
		{
			name: "hierarchy without discriminator",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{Name: "GetAnimals", ReturnEntity: "Animal"})
				tpc(b)
			},
			code: relmap.TableValuedFunctionNonTph,
		},
		{
			name: "unmapped parameter type",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{
					Name: "BlogRating", Scalar: true, ReturnStoreType: "int",
					Parameters: []*metadata.DbFunctionParameter{{Name: "weights", Type: metadata.Type("vector")}},
				})
			},
			code:     relmap.DbFunctionInvalidParameterType,
			contains: "'weights'",
		},
		{
			name: "mapped function missing",
			configure: func(b *metadata.Builder) {
				blog(b).ToFunction("GetBlogs")
			},
			code: relmap.MappedFunctionNotFound,
		},
		{
			name: "mapped function returning another type",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{Name: "GetCustomers", ReturnEntity: "Customer"})
				customer(b)
				blog(b).ToFunction("GetCustomers")
			},
			code: relmap.InvalidMappedFunctionUnmatchedReturn,
		},
		{
			name: "mapped scalar function",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{Name: "BlogRating", Scalar: true, ReturnStoreType: "int"})
				blog(b).ToFunction("BlogRating")
			},
			code: relmap.InvalidMappedFunctionUnmatchedReturn,
		},
		{
			name: "mapped function with parameters",
			configure: func(b *metadata.Builder) {
				b.DbFunction(&metadata.DbFunction{
					Name: "GetBlogs", ReturnEntity: "Blog",
					Parameters: []*metadata.DbFunctionParameter{{Name: "since", Type: metadata.TypeTime}},
				})
				blog(b).ToFunction("GetBlogs")
			},
			code:     relmap.InvalidMappedFunctionWithParameters,
			contains: "{since}",
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

func TestSQLQueries(t *testing.T) {
	t.Run("tph root query", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			animal, _, _ := animals(b)
			animal.ToSQLQuery("SELECT * FROM Animals")
		})
		_, err := validate(t, m)
		require.NoError(t, err)
	})

	t.Run("derived type with its own query", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			animal, cat, _ := animals(b)
			animal.ToSQLQuery("SELECT * FROM Animals")
			cat.ToSQLQuery("SELECT * FROM Cats")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.InvalidMappedSqlQueryDerivedType)
	})

	t.Run("tpc derived type", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			tpc(b)
			b.Entity("Cat").ToSQLQuery("SELECT * FROM Cats")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.InvalidMappedSqlQueryDerivedType)
	})
}
