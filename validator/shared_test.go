package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

func TestSharedTable(t *testing.T) {
	t.Run("key names", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) { orders(b) })
		_, err := validate(t, m)
		require.NoError(t, err)

		m = build(t, func(b *metadata.Builder) { orders(b) })
		m.FindEntityType("Details").PrimaryKey.Name = "PK_Details"
		_, err = validate(t, m)
		requireCode(t, err, relmap.IncompatibleTableKeyNameMismatch)
		assert.Contains(t, err.Error(), "'PK_Details'")
		assert.Contains(t, err.Error(), "'PK_Orders'")
	})

	t.Run("comments", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			order, details := orders(b)
			order.Comment("orders")
			details.Comment("details")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.IncompatibleTableCommentMismatch)
	})

	t.Run("comment on one side", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			order, _ := orders(b)
			order.Comment("orders")
		})
		_, err := validate(t, m)
		require.NoError(t, err)
	})

	t.Run("excluded from migrations", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			_, details := orders(b)
			details.ExcludeFromMigrations()
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.IncompatibleTableExcludedMismatch)
	})

	t.Run("no relationship", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			orders(b)
			blog(b).ToTable("Orders", "")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.IncompatibleTableNoRelationship)
	})

	t.Run("derived type linked to the root", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			order := b.Entity("Order").ToTable("Orders", "")
			order.Property("Id", metadata.TypeInt32)
			order.HasKey("Id")
			item := b.Entity("Item").UseStrategy(metadata.TPT).ToTable("Items", "")
			item.Property("Id", metadata.TypeInt32)
			item.HasKey("Id")
			special := b.Entity("Special").HasBase("Item").ToTable("Orders", "")
			special.Property("Note", metadata.TypeString)
			special.HasForeignKey("Order", "Id").Unique().RequiredDependent()
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.IncompatibleTableDerivedRelationship)
		assert.Contains(t, err.Error(), "Configure the relationship on the base type 'Item'")
	})

	t.Run("shared view without relationship", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			blog(b).ToTable("", "").ToView("Everything", "")
			e := b.Entity("Post").ToView("Everything", "")
			e.Property("Id", metadata.TypeInt32)
			e.HasKey("Id")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.IncompatibleViewNoRelationship)
	})
}

func TestSharedColumns(t *testing.T) {
	stored := true
	tests := []struct {
		name      string
		configure func(o, d *metadata.PropertyBuilder)
		code      relmap.Code
	}{
		{
			name:      "same configuration",
			configure: func(o, d *metadata.PropertyBuilder) { o.MaxLength(10); d.MaxLength(10) },
		},
		{
			name:      "nullability",
			configure: func(_, d *metadata.PropertyBuilder) { d.Nullable() },
			code:      relmap.DuplicateColumnNameNullabilityMismatch,
		},
		{
			name:      "max length",
			configure: func(o, d *metadata.PropertyBuilder) { o.MaxLength(10); d.MaxLength(20) },
			code:      relmap.DuplicateColumnNameMaxLengthMismatch,
		},
		{
			name:      "unicode",
			configure: func(_, d *metadata.PropertyBuilder) { d.Unicode(false) },
			code:      relmap.DuplicateColumnNameUnicodenessMismatch,
		},
		{
			name:      "fixed length",
			configure: func(_, d *metadata.PropertyBuilder) { d.FixedLength(true) },
			code:      relmap.DuplicateColumnNameFixedLengthMismatch,
		},
		{
			name:      "precision",
			configure: func(o, d *metadata.PropertyBuilder) { o.Precision(10, 2); d.Precision(12, 2) },
			code:      relmap.DuplicateColumnNamePrecisionMismatch,
		},
		{
			name:      "scale",
			configure: func(o, d *metadata.PropertyBuilder) { o.Precision(10, 2); d.Precision(10, 3) },
			code:      relmap.DuplicateColumnNameScaleMismatch,
		},
		{
			name:      "concurrency token",
			configure: func(_, d *metadata.PropertyBuilder) { d.ConcurrencyToken() },
			code:      relmap.DuplicateColumnNameConcurrencyTokenMismatch,
		},
		{
			name:      "column type",
			configure: func(o, d *metadata.PropertyBuilder) { o.HasColumnType("varchar(10)"); d.HasColumnType("nvarchar(10)") },
			code:      relmap.DuplicateColumnNameDataTypeMismatch,
		},
		{
			name:      "column type case",
			configure: func(o, d *metadata.PropertyBuilder) { o.HasColumnType("nvarchar(10)"); d.HasColumnType("NVARCHAR(10)") },
		},
		{
			name:      "computed sql",
			configure: func(_, d *metadata.PropertyBuilder) { d.HasComputedColumnSQL("'x'", nil) },
			code:      relmap.DuplicateColumnNameComputedSqlMismatch,
		},
		{
			name: "stored",
			configure: func(o, d *metadata.PropertyBuilder) {
				o.HasComputedColumnSQL("'x'", nil)
				d.HasComputedColumnSQL("'x'", &stored)
			},
			code: relmap.DuplicateColumnNameIsStoredMismatch,
		},
		{
			name:      "default value",
			configure: func(o, d *metadata.PropertyBuilder) { o.HasDefaultValue("a"); d.HasDefaultValue("b") },
			code:      relmap.DuplicateColumnNameDefaultSqlMismatch,
		},
		{
			name:      "equal default values",
			configure: func(o, d *metadata.PropertyBuilder) { o.HasDefaultValue("a"); d.HasDefaultValue("a") },
		},
		{
			name:      "default sql",
			configure: func(o, d *metadata.PropertyBuilder) { o.HasDefaultValueSQL("'a'"); d.HasDefaultValueSQL("'b'") },
			code:      relmap.DuplicateColumnNameDefaultSqlMismatch,
		},
		{
			name:      "comment",
			configure: func(o, _ *metadata.PropertyBuilder) { o.Comment("code") },
			code:      relmap.DuplicateColumnNameCommentMismatch,
		},
		{
			name:      "collation",
			configure: func(o, d *metadata.PropertyBuilder) { o.Collation("C"); d.Collation("POSIX") },
			code:      relmap.DuplicateColumnNameCollationMismatch,
		},
		{
			name:      "column order",
			configure: func(o, d *metadata.PropertyBuilder) { o.HasColumnOrder(1); d.HasColumnOrder(2) },
			code:      relmap.DuplicateColumnNameOrderMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(t, func(b *metadata.Builder) {
				order, details := orders(b)
				tt.configure(order.Property("Code", metadata.TypeString), details.Property("Code", metadata.TypeString))
			})
			_, err := validate(t, m)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}
			requireCode(t, err, tt.code)
			assert.Contains(t, err.Error(), "'Order.Code' and 'Details.Code' are both mapped to column 'Code' in 'Orders'")
		})
	}

	t.Run("provider type", func(t *testing.T) {
		shared := func(unique bool) *metadata.Model {
			return build(t, func(b *metadata.Builder) {
				order, details := orders(b)
				order.Property("Code", metadata.TypeString).HasColumnType("varbinary(16)")
				details.Property("Code", metadata.TypeString).HasColumnType("varbinary(16)").ProviderType(metadata.TypeBytes)
				if unique {
					order.HasIndex("Code").Unique()
				}
			})
		}
		_, err := validate(t, shared(false))
		require.NoError(t, err)

		_, err = validate(t, shared(true))
		requireCode(t, err, relmap.DuplicateColumnNameProviderTypeMismatch)
		assert.Contains(t, err.Error(), "differing provider types")
	})

	t.Run("same hierarchy", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			_, cat, _ := animals(b)
			cat.Property("Nick", metadata.TypeString).HasColumnName("Name")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.DuplicateColumnNameSameHierarchy)
	})

	t.Run("missing concurrency column", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			order, _ := orders(b)
			order.Property("Version", metadata.TypeBytes).ConcurrencyToken().ValueGenerated(metadata.OnAddOrUpdate)
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.MissingConcurrencyColumn)
		assert.Contains(t, err.Error(), "'Details'")
		assert.Contains(t, err.Error(), "'Version'")
	})

	t.Run("duplicate column orders", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			e := blog(b)
			e.Property("Name", metadata.TypeString).HasColumnOrder(1)
			e.Property("Title", metadata.TypeString).HasColumnOrder(1)
		})
		events, err := validate(t, m)
		require.NoError(t, err)
		assert.Equal(t, []diagnostics.EventID{diagnostics.DuplicateColumnOrders}, eventIDs(events))
		assert.Contains(t, events[0].Message, "Name")
		assert.Contains(t, events[0].Message, "Title")
	})
}

func TestSharedConstraints(t *testing.T) {
	t.Run("key columns", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			order, details := orders(b)
			order.HasAlternateKey("Total").HasName("AK_Orders_Shared")
			details.HasAlternateKey("Notes").HasName("AK_Orders_Shared")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.DuplicateKeyColumnMismatch)
	})

	t.Run("foreign key columns", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			customer := b.Entity("Customer")
			customer.Property("Id", metadata.TypeInt32)
			customer.HasKey("Id")
			order, details := orders(b)
			order.Property("CustomerId", metadata.TypeInt32)
			order.HasForeignKey("Customer", "CustomerId").HasName("FK_Orders_Customer")
			details.Property("BuyerId", metadata.TypeInt32)
			details.HasForeignKey("Customer", "BuyerId").HasName("FK_Orders_Customer")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.DuplicateForeignKeyColumnMismatch)
	})

	t.Run("index uniqueness", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			order, details := orders(b)
			details.Property("Amount", metadata.TypeDecimal).Precision(18, 2).HasColumnName("Total")
			order.HasIndex("Total").HasDatabaseName("IX_Orders_Total").Unique()
			details.HasIndex("Amount").HasDatabaseName("IX_Orders_Total")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.DuplicateIndexUniquenessMismatch)
	})

	t.Run("index columns", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			order, details := orders(b)
			order.HasIndex("Total").HasDatabaseName("IX_Orders_Shared")
			details.HasIndex("Notes").HasDatabaseName("IX_Orders_Shared")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.DuplicateIndexColumnMismatch)
	})

	t.Run("index sort orders and filters", func(t *testing.T) {
		shared := func(configure func(ix, dup *metadata.IndexBuilder)) *metadata.Model {
			return build(t, func(b *metadata.Builder) {
				order, details := orders(b)
				details.Property("Amount", metadata.TypeDecimal).Precision(18, 2).HasColumnName("Total")
				configure(
					order.HasIndex("Total").HasDatabaseName("IX_Orders_Total"),
					details.HasIndex("Amount").HasDatabaseName("IX_Orders_Total"),
				)
			})
		}
		_, err := validate(t, shared(func(ix, dup *metadata.IndexBuilder) {}))
		require.NoError(t, err)

		_, err = validate(t, shared(func(ix, _ *metadata.IndexBuilder) { ix.Descending(true) }))
		requireCode(t, err, relmap.DuplicateIndexSortOrdersMismatch)

		_, err = validate(t, shared(func(ix, dup *metadata.IndexBuilder) {
			ix.HasFilter("[Total] > 0")
			dup.HasFilter("[Total] > 1")
		}))
		requireCode(t, err, relmap.DuplicateIndexFiltersMismatch)
		assert.Contains(t, err.Error(), "'[Total] > 1'")
	})

	t.Run("foreign key delete behavior", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			customer := b.Entity("Customer")
			customer.Property("Id", metadata.TypeInt32)
			customer.HasKey("Id")
			order, details := orders(b)
			order.Property("CustomerId", metadata.TypeInt32)
			order.HasForeignKey("Customer", "CustomerId").HasName("FK_Orders_Customer").OnDelete(metadata.Cascade)
			details.Property("BuyerId", metadata.TypeInt32).HasColumnName("CustomerId")
			details.HasForeignKey("Customer", "BuyerId").HasName("FK_Orders_Customer").OnDelete(metadata.Restrict)
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.DuplicateForeignKeyDeleteBehaviorMismatch)
	})

	t.Run("check constraint sql", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			order, details := orders(b)
			order.HasCheckConstraint("CK_Total", "Total > 0")
			details.HasCheckConstraint("CK_Total", "Total >= 0")
		})
		_, err := validate(t, m)
		requireCode(t, err, relmap.DuplicateCheckConstraintSqlMismatch)
	})
}

func TestOptionalDependents(t *testing.T) {
	optional := func(m *metadata.Model) {
		details := m.FindEntityType("Details")
		details.ForeignKeys[0].RequiredDependent = false
		details.FindProperty("Notes").Nullable = true
	}

	t.Run("identified by a required column", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) { orders(b) })
		m.FindEntityType("Details").ForeignKeys[0].RequiredDependent = false
		events, err := validate(t, m)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("without identifying column", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) { orders(b) })
		optional(m)
		events, err := validate(t, m)
		require.NoError(t, err)
		assert.Equal(t, []diagnostics.EventID{diagnostics.OptionalDependentWithoutIdentifyingPropertyWarning}, eventIDs(events))
	})

	t.Run("with a dependent of its own", func(t *testing.T) {
		m := build(t, func(b *metadata.Builder) {
			orders(b)
			extra := b.Entity("Extra").ToTable("Orders", "")
			extra.Property("Id", metadata.TypeInt32)
			extra.Property("Flag", metadata.TypeBool)
			extra.HasKey("Id")
			extra.HasForeignKey("Details", "Id").Unique()
		})
		optional(m)
		_, err := validate(t, m)
		requireCode(t, err, relmap.OptionalDependentWithDependentWithoutIdentifyingProperty)
	})
}
