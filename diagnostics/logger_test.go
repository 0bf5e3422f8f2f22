package diagnostics

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relmap"
	"github.com/syssam/relmap/metadata"
)

func testProperty(t *testing.T) *metadata.Property {
	t.Helper()
	b := metadata.NewBuilder()
	e := b.Entity("Blog")
	e.Property("Id", metadata.TypeInt32)
	e.Property("Active", metadata.TypeBool).HasDefaultValue(true)
	e.HasKey("Id")
	m, err := b.Build()
	require.NoError(t, err)
	return m.FindEntityType("Blog").FindProperty("Active")
}

func TestLoggerBehavior(t *testing.T) {
	p := testProperty(t)

	t.Run("logs by default", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(WithSlogger(slog.New(slog.NewJSONHandler(&buf, nil))))
		require.NoError(t, l.BoolWithDefaultWarning(p))
		out := buf.String()
		assert.Contains(t, out, `"event_id":"BoolWithDefaultWarning"`)
		assert.Contains(t, out, `"entity_type":"Blog"`)
		assert.Contains(t, out, `"level":"WARN"`)
	})

	t.Run("ignores", func(t *testing.T) {
		var buf bytes.Buffer
		var events []Event
		l := NewLogger(
			WithSlogger(slog.New(slog.NewTextHandler(&buf, nil))),
			WithWarnings(WarningsConfig{Events: map[EventID]Behavior{BoolWithDefaultWarning: Ignore}}),
			WithSink(func(e Event) { events = append(events, e) }),
		)
		require.NoError(t, l.BoolWithDefaultWarning(p))
		assert.Empty(t, buf.String())
		assert.Empty(t, events)
	})

	t.Run("throws", func(t *testing.T) {
		var events []Event
		l := NewLogger(
			WithWarnings(WarningsConfig{Default: Throw}),
			WithSink(func(e Event) { events = append(events, e) }),
		)
		err := l.ModelValidationKeyDefaultValueWarning(p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, relmap.ErrWarningAsError))
		assert.True(t, relmap.IsWarningError(err))
		require.Len(t, events, 1)
		assert.Equal(t, ModelValidationKeyDefaultValueWarning, events[0].ID)
		assert.Equal(t, Throw, events[0].Behavior)
	})

	t.Run("nil logger drops warnings", func(t *testing.T) {
		var l *Logger
		assert.NoError(t, l.TriggerOnNonRootTphEntity(p.DeclaringType))
	})
}

func TestWarningMessages(t *testing.T) {
	p := testProperty(t)
	e := p.DeclaringType
	ix := &metadata.Index{Name: "IX", DeclaringType: e, Properties: []*metadata.Property{p}}
	tables := []metadata.StoreObjectIdentifier{metadata.TableID("A", "dbo")}

	var got []Event
	l := NewLogger(WithSink(func(ev Event) { got = append(got, ev) }), WithSlogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	require.NoError(t, l.OptionalDependentWithoutIdentifyingPropertyWarning(e))
	require.NoError(t, l.DuplicateColumnOrders(metadata.TableID("Blog", ""), []string{"A", "B"}))
	require.NoError(t, l.TpcStoreGeneratedIdentityWarning(p))
	require.NoError(t, l.StoredProcedureConcurrencyTokenNotMapped(e, p, "Blog_Update"))
	require.NoError(t, l.TriggerOnNonRootTphEntity(e))
	require.NoError(t, l.AllIndexPropertiesNotToMappedToAnyTable(e, ix))
	require.NoError(t, l.IndexPropertiesBothMappedAndNotMappedToTable(e, ix, "Active"))
	require.NoError(t, l.IndexPropertiesMappedToNonOverlappingTables(e, ix, "Id", tables, "Active", tables))

	require.Len(t, got, 8)
	assert.Contains(t, got[1].Message, "{'A', 'B'}")
	assert.Contains(t, got[3].Message, "'Blog_Update'")
	assert.Contains(t, got[5].Message, "The index 'IX'")
	assert.True(t, strings.HasSuffix(got[7].Message, "must map to at least one common table."))
	assert.Contains(t, got[7].Message, "{'dbo.A'}")
	for _, ev := range got {
		assert.True(t, ev.ID.Valid(), ev.ID)
	}
}

func TestParseWarningsConfig(t *testing.T) {
	t.Run("decodes behaviors", func(t *testing.T) {
		c, err := ParseWarningsConfig(strings.NewReader(`
default: ignore
events:
  BoolWithDefaultWarning: throw
  DuplicateColumnOrders: log
`))
		require.NoError(t, err)
		assert.Equal(t, Ignore, c.Default)
		assert.Equal(t, Throw, c.Behavior(BoolWithDefaultWarning))
		assert.Equal(t, Log, c.Behavior(DuplicateColumnOrders))
		assert.Equal(t, Ignore, c.Behavior(TriggerOnNonRootTphEntity))
	})

	t.Run("empty document", func(t *testing.T) {
		c, err := ParseWarningsConfig(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, Log, c.Behavior(BoolWithDefaultWarning))
	})

	t.Run("unknown behavior", func(t *testing.T) {
		_, err := ParseWarningsConfig(strings.NewReader("default: explode\n"))
		require.Error(t, err)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := ParseWarningsConfig(strings.NewReader("events:\n  NoSuchEvent: log\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NoSuchEvent")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := ParseWarningsConfig(strings.NewReader("level: warn\n"))
		require.Error(t, err)
	})
}

func TestBehaviorText(t *testing.T) {
	for _, b := range []Behavior{Log, Ignore, Throw} {
		text, err := b.MarshalText()
		require.NoError(t, err)
		var got Behavior
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, b, got)
	}
}
