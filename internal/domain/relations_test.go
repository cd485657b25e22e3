package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// Every included relation must resolve to a gorm association with the same
// kind and foreign key, otherwise Preload would silently attach nothing.
func TestRelationsMatchGormSchema(t *testing.T) {
	cache := &sync.Map{}
	for entity, rels := range Relations {
		model := ModelOf(entity)
		require.NotNil(t, model, entity)

		s, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err)

		for _, rel := range rels {
			if !rel.Included() {
				continue
			}
			gr, ok := s.Relationships.Relations[rel.Association]
			require.True(t, ok, "%s.%s is not a gorm association", entity, rel.Association)
			assert.Equal(t, string(rel.Kind), string(gr.Type), "%s.%s", entity, rel.Association)
			require.NotEmpty(t, gr.References)
			assert.Equal(t, rel.ForeignKey, gr.References[0].ForeignKey.DBName, "%s.%s", entity, rel.Association)
		}
	}
}

func TestIncludesOf(t *testing.T) {
	names := func(rels []Relation) []string {
		var out []string
		for _, r := range rels {
			out = append(out, r.Association)
		}
		return out
	}

	assert.Equal(t, []string{"Orders"}, names(IncludesOf(EntityCustomer)))
	assert.Equal(t, []string{"OrderedItems", "Payments"}, names(IncludesOf(EntityOrder)))
	assert.Equal(t, []string{"Category", "OrderedItems"}, names(IncludesOf(EntityProduct)))
	assert.Equal(t, []string{"Products"}, names(IncludesOf(EntityCategory)))
	assert.Empty(t, IncludesOf(EntityPayment))
	assert.Empty(t, IncludesOf(EntityAdministrator))
}

func TestDependentsOf(t *testing.T) {
	deps := DependentsOf(EntityOrder)
	var targets []Entity
	for _, d := range deps {
		assert.Equal(t, "order_id", d.ForeignKey)
		targets = append(targets, d.Target)
	}
	assert.ElementsMatch(t, []Entity{EntityOrderedItem, EntityPayment}, targets)

	assert.Empty(t, DependentsOf(EntityPayment))
}
