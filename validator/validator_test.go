package validator

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func build(t *testing.T, configure func(b *metadata.Builder)) *metadata.Model {
	t.Helper()
	b := metadata.NewBuilder()
	configure(b)
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

// validate runs a validator over m and returns the warnings it raised.
func validate(t *testing.T, m *metadata.Model, opts ...diagnostics.Option) ([]diagnostics.Event, error) {
	t.Helper()
	var events []diagnostics.Event
	opts = append([]diagnostics.Option{
		diagnostics.WithSlogger(quiet),
		diagnostics.WithSink(func(e diagnostics.Event) { events = append(events, e) }),
	}, opts...)
	v, err := New(WithLogger(diagnostics.NewLogger(opts...)), WithSlog(quiet))
	require.NoError(t, err)
	return events, v.Validate(m)
}

func requireCode(t *testing.T, err error, code relmap.Code) {
	t.Helper()
	require.Error(t, err)
	got, ok := relmap.CodeOf(err)
	require.True(t, ok, "not a validation error: %v", err)
	require.Equal(t, code, got, err.Error())
	require.True(t, errors.Is(err, relmap.ErrInvalidModel))
}

func eventIDs(events []diagnostics.Event) []diagnostics.EventID {
	ids := make([]diagnostics.EventID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func blog(b *metadata.Builder) *metadata.EntityBuilder {
	e := b.Entity("Blog")
	e.Property("Id", metadata.TypeInt32)
	e.Property("Name", metadata.TypeString)
	e.HasKey("Id")
	return e
}

// animals declares a TPH hierarchy Animal <- Cat, Dog discriminated by Kind.
func animals(b *metadata.Builder) (animal, cat, dog *metadata.EntityBuilder) {
	animal = b.Entity("Animal")
	animal.Property("Id", metadata.TypeInt32)
	animal.Property("Name", metadata.TypeString)
	animal.Property("Kind", metadata.TypeString)
	animal.HasKey("Id")
	animal.HasDiscriminator("Kind")
	cat = b.Entity("Cat").HasBase("Animal")
	cat.Property("Lives", metadata.TypeInt32)
	dog = b.Entity("Dog").HasBase("Animal")
	dog.Property("Good", metadata.TypeBool)
	return animal, cat, dog
}

// tpc declares a TPC hierarchy Animal <- Cat, Dog with a table per type.
func tpc(b *metadata.Builder) *metadata.EntityBuilder {
	animal := b.Entity("Animal").UseStrategy(metadata.TPC)
	animal.Property("Id", metadata.TypeInt32)
	animal.Property("Name", metadata.TypeString)
	animal.HasKey("Id")
	b.Entity("Cat").HasBase("Animal").Property("Lives", metadata.TypeInt32)
	b.Entity("Dog").HasBase("Animal").Property("Good", metadata.TypeBool)
	return animal
}

// orders declares Order and Details sharing the table "Orders"; Details is
// a required dependent of Order.
func orders(b *metadata.Builder) (order, details *metadata.EntityBuilder) {
	order = b.Entity("Order").ToTable("Orders", "")
	order.Property("Id", metadata.TypeInt32)
	order.Property("Total", metadata.TypeDecimal).Precision(18, 2)
	order.HasKey("Id")
	details = b.Entity("Details").ToTable("Orders", "")
	details.Property("Id", metadata.TypeInt32)
	details.Property("Notes", metadata.TypeString)
	details.HasKey("Id")
	details.HasForeignKey("Order", "Id").Unique().RequiredDependent()
	return order, details
}

func TestValidModels(t *testing.T) {
	tests := []struct {
		name      string
		configure func(b *metadata.Builder)
	}{
		{
			name:      "single table",
			configure: func(b *metadata.Builder) { blog(b) },
		},
		{
			name:      "tph hierarchy",
			configure: func(b *metadata.Builder) { animals(b) },
		},
		{
			name:      "table sharing",
			configure: func(b *metadata.Builder) { orders(b) },
		},
		{
			name: "entity splitting",
			configure: func(b *metadata.Builder) {
				e := b.Entity("Customer").ToTable("Customers", "")
				e.Property("Id", metadata.TypeInt32)
				e.Property("Name", metadata.TypeString)
				e.Property("Phone", metadata.TypeString)
				e.HasKey("Id")
				e.SplitToTable("CustomerDetails", "", "Phone")
			},
		},
		{
			name: "abstract tpc root",
			configure: func(b *metadata.Builder) {
				tpc(b).Abstract()
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := validate(t, build(t, tt.configure))
			require.NoError(t, err)
			assert.Empty(t, events)
		})
	}
}

func TestValidateNilModel(t *testing.T) {
	v, err := New(WithSlog(quiet))
	require.NoError(t, err)
	assert.Error(t, v.Validate(nil))
	assert.False(t, relmap.IsValidationError(v.Validate(nil)))
}

func TestNewRejectsNilOptions(t *testing.T) {
	_, err := New(WithLogger(nil))
	assert.Error(t, err)
	_, err = New(WithSlog(nil))
	assert.Error(t, err)
}

func TestValidateIsIdempotent(t *testing.T) {
	m := build(t, func(b *metadata.Builder) { orders(b) })
	m.FindEntityType("Details").PrimaryKey.Name = "PK_Details"
	_, first := validate(t, m)
	_, second := validate(t, m)
	requireCode(t, first, relmap.IncompatibleTableKeyNameMismatch)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}

func TestValidateConcurrently(t *testing.T) {
	m := build(t, func(b *metadata.Builder) {
		orders(b)
		animals(b)
		blog(b).Property("Active", metadata.TypeBool).HasDefaultValue(true)
	})
	v, err := New(WithSlog(quiet), WithLogger(diagnostics.NewLogger(diagnostics.WithSlogger(quiet))))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = v.Validate(m)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestWarningsConfiguredToThrow(t *testing.T) {
	m := build(t, func(b *metadata.Builder) {
		blog(b).Property("Active", metadata.TypeBool).HasDefaultValue(true)
	})

	events, err := validate(t, m)
	require.NoError(t, err)
	assert.Equal(t, []diagnostics.EventID{diagnostics.BoolWithDefaultWarning}, eventIDs(events))

	_, err = validate(t, m, diagnostics.WithWarnings(diagnostics.WarningsConfig{
		Events: map[diagnostics.EventID]diagnostics.Behavior{diagnostics.BoolWithDefaultWarning: diagnostics.Throw},
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, relmap.ErrWarningAsError))
	assert.False(t, relmap.IsValidationError(err))

	events, err = validate(t, m, diagnostics.WithWarnings(diagnostics.WarningsConfig{Default: diagnostics.Ignore}))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestPackageValidate(t *testing.T) {
	m := build(t, func(b *metadata.Builder) { blog(b) })
	assert.NoError(t, Validate(m))
}
