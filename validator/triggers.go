package validator

import (
	"github.com/syssam/relmap"
	"github.com/syssam/relmap/diagnostics"
	"github.com/syssam/relmap/metadata"
)

// ValidateTriggerPlacement warns about triggers declared on derived types of
// TPH hierarchies; they fire for rows of every type in the table.
func (v *Validator) ValidateTriggerPlacement(m *metadata.Model, logger *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		if e.Base == nil || len(e.Triggers) == 0 || e.GetMappingStrategy() != metadata.TPH {
			continue
		}
		if err := logger.TriggerOnNonRootTphEntity(e); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTriggers checks that every trigger is defined on the table of its
// entity type or on one of its table fragments.
func (v *Validator) ValidateTriggers(m *metadata.Model, _ *diagnostics.Logger) error {
	for _, e := range m.EntityTypes() {
		table, ok := e.StoreObject(metadata.Table)
		for _, t := range e.Triggers {
			if !ok {
				return fail(relmap.TriggerOnUnmappedEntityType,
					"Can't configure the trigger '%s' for entity type '%s' because it is not mapped to a table.",
					t.ModelName, e.DisplayName())
			}
			name, schema := t.GetTableName()
			target := metadata.TableID(name, schema)
			if target == table || e.FindMappingFragment(target) != nil {
				continue
			}
			return fail(relmap.TriggerWithMismatchedTable,
				"The trigger '%s' for table '%s' is defined on entity type '%s', which is mapped to table '%s'.",
				t.ModelName, target.DisplayName(), e.DisplayName(), table.DisplayName())
		}
	}
	return nil
}
