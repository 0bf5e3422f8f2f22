package metadata

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// GetDefaultTableName returns the table e maps to when none is configured.
// Owned references share their owner's table, TPH types their root's, and
// abstract TPC types have none.
func (e *EntityType) GetDefaultTableName() string {
	if o := e.FindOwnership(); o != nil && o.Unique {
		return o.PrincipalType.GetTableName()
	}
	if e.Base != nil && e.GetMappingStrategy() == TPH {
		return e.RootType().GetTableName()
	}
	if e.Abstract && e.GetMappingStrategy() == TPC {
		return ""
	}
	name := e.ShortName()
	if e.Model.PluralizeTableNames {
		name = inflect.Pluralize(name)
	}
	return truncate(name, e.Model.MaxIdentifierLength)
}

// FormatProperties renders property names as {'A', 'B'}.
func FormatProperties(props []*Property) string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	return FormatColumns(names)
}

// FormatColumns renders names as {'a', 'b'}.
func FormatColumns(names []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(n)
		b.WriteByte('\'')
	}
	b.WriteByte('}')
	return b.String()
}

func truncate(name string, max int) string {
	if max <= 0 || len(name) <= max {
		return name
	}
	return name[:max]
}

func defaultKeyName(so StoreObjectIdentifier, primary bool, columns []string, max int) string {
	if primary {
		return truncate("PK_"+so.Name, max)
	}
	return truncate("AK_"+so.Name+"_"+strings.Join(columns, "_"), max)
}

func defaultIndexName(so StoreObjectIdentifier, columns []string, max int) string {
	return truncate("IX_"+so.Name+"_"+strings.Join(columns, "_"), max)
}

func defaultForeignKeyName(so, principal StoreObjectIdentifier, columns []string, max int) string {
	return truncate("FK_"+so.Name+"_"+principal.Name+"_"+strings.Join(columns, "_"), max)
}

func defaultCheckName(so StoreObjectIdentifier, modelName string, max int) string {
	return truncate("CK_"+so.Name+"_"+modelName, max)
}
