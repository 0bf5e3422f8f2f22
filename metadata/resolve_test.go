package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func animals(t *testing.T, configure func(b *Builder)) *Model {
	t.Helper()
	b := NewBuilder()
	a := b.Entity("Animal")
	a.Property("Id", TypeInt32)
	a.Property("Name", TypeString)
	a.HasKey("Id")
	b.Entity("Cat").HasBase("Animal").Property("Lives", TypeInt32)
	b.Entity("Dog").HasBase("Animal").Property("Good", TypeBool)
	if configure != nil {
		configure(b)
	}
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestMappingStrategy(t *testing.T) {
	t.Run("defaults to TPH", func(t *testing.T) {
		m := animals(t, nil)
		cat := m.FindEntityType("Cat")
		assert.Equal(t, TPH, cat.GetMappingStrategy())
		assert.Equal(t, "Animal", cat.GetTableName())
		lives := cat.FindProperty("Lives")
		assert.True(t, lives.IsColumnNullable(TableID("Animal", "")))
	})

	t.Run("inferred TPT from derived tables", func(t *testing.T) {
		m := animals(t, func(b *Builder) {
			b.Entity("Cat").ToTable("Cats", "")
		})
		cat := m.FindEntityType("Cat")
		assert.Equal(t, TPT, cat.GetMappingStrategy())
		assert.Equal(t, "Cats", cat.GetTableName())
		assert.Equal(t, "Dog", m.FindEntityType("Dog").GetTableName())
		name := cat.FindProperty("Name")
		assert.Equal(t, "Name", name.GetColumnName(TableID("Animal", "")))
		assert.Empty(t, name.GetColumnName(TableID("Cats", "")))
		assert.Equal(t, "Id", cat.FindProperty("Id").GetColumnName(TableID("Cats", "")))
	})

	t.Run("TPC abstract root has no table", func(t *testing.T) {
		m := animals(t, func(b *Builder) {
			b.Entity("Animal").UseStrategy(TPC).Abstract()
		})
		animal := m.FindEntityType("Animal")
		assert.Empty(t, animal.GetTableName())
		_, ok := animal.StoreObject(Table)
		assert.False(t, ok)
		name := animal.FindProperty("Name")
		assert.Equal(t, []StoreObjectIdentifier{TableID("Cat", ""), TableID("Dog", "")}, name.GetMappedTables())
	})

	t.Run("discriminator values default to short names", func(t *testing.T) {
		m := animals(t, func(b *Builder) {
			a := b.Entity("Animal")
			a.Property("Kind", TypeString)
			a.HasDiscriminator("Kind")
			b.Entity("Dog").HasDiscriminatorValue("D")
		})
		v, explicit := m.FindEntityType("Cat").GetDiscriminatorValue()
		assert.Equal(t, "Cat", v)
		assert.False(t, explicit)
		v, explicit = m.FindEntityType("Dog").GetDiscriminatorValue()
		assert.Equal(t, "D", v)
		assert.True(t, explicit)
	})
}

func TestTableSharing(t *testing.T) {
	b := NewBuilder()
	o := b.Entity("Order").ToTable("Orders", "")
	o.Property("Id", TypeInt32).HasColumnName("OrderId")
	o.HasKey("Id").HasName("PK_Order")
	d := b.Entity("Details").ToTable("Orders", "")
	d.Property("Id", TypeInt32)
	d.Property("Note", TypeString)
	d.HasKey("Id")
	d.HasForeignKey("Order", "Id").Unique().Required()
	m, err := b.Build()
	require.NoError(t, err)

	orders := TableID("Orders", "")
	details := m.FindEntityType("Details")
	fks := details.FindRowInternalForeignKeys(orders)
	require.Len(t, fks, 1)
	assert.Equal(t, "OrderId", details.FindProperty("Id").GetColumnName(orders))
	assert.Equal(t, "PK_Order", details.PrimaryKey.GetName(orders))
	assert.Empty(t, fks[0].GetConstraintName(orders, orders))
	assert.True(t, details.IsOptionalSharingDependent(orders))
	assert.True(t, details.FindProperty("Note").IsColumnNullable(orders))
}

func TestOwnedColumnNames(t *testing.T) {
	b := NewBuilder()
	o := b.Entity("Order")
	o.Property("Id", TypeInt32)
	o.HasKey("Id")
	o.OwnsOne("Shipping", "Address").Property("Street", TypeString)
	m, err := b.Build()
	require.NoError(t, err)

	addr := m.FindEntityType("Order.Shipping#Address")
	table := TableID("Order", "")
	assert.Equal(t, "Shipping_Street", addr.FindProperty("Street").GetColumnName(table))
	assert.Equal(t, "Id", addr.FindProperty("OrderId").GetColumnName(table))
}

func TestConstraintNames(t *testing.T) {
	b := NewBuilder().PluralizeTableNames()
	c := b.Entity("Customer")
	c.Property("Id", TypeInt32)
	c.Property("Email", TypeString)
	c.HasKey("Id")
	c.HasAlternateKey("Email")
	c.HasIndex("Email").Unique()
	c.HasCheckConstraint("Email", "Email <> ''")
	c.HasTrigger("Audit")
	o := b.Entity("Order")
	o.Property("Id", TypeInt32)
	o.Property("CustomerId", TypeInt32)
	o.HasKey("Id")
	o.HasForeignKey("Customer", "CustomerId")
	m, err := b.Build()
	require.NoError(t, err)

	cust := m.FindEntityType("Customer")
	table := TableID("Customers", "")
	assert.Equal(t, "Customers", cust.GetTableName())
	assert.Equal(t, "PK_Customers", cust.PrimaryKey.GetName(table))
	assert.Equal(t, "AK_Customers_Email", cust.Keys[1].GetName(table))
	assert.Equal(t, "IX_Customers_Email", cust.Indexes[0].GetDatabaseName(table))
	assert.Equal(t, "CK_Customers_Email", cust.CheckConstraints[0].GetName(table))
	assert.Equal(t, "Audit", cust.Triggers[0].GetDatabaseName(table))

	order := m.FindEntityType("Order")
	principal, ok := order.ForeignKeys[0].GetPrincipalTable()
	require.True(t, ok)
	assert.Equal(t, "FK_Orders_Customers_CustomerId", order.ForeignKeys[0].GetConstraintName(TableID("Orders", ""), principal))
}

func TestFormatProperties(t *testing.T) {
	p := []*Property{{Name: "A"}, {Name: "B"}}
	assert.Equal(t, "{'A', 'B'}", FormatProperties(p))
	assert.Equal(t, "{}", FormatColumns(nil))
}
