package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
)

func TestRelationPlanCoversUniqueKeyedTablesFirst(t *testing.T) {
	// Every unique-keyed relation must carry its duplicate-delete key so the
	// move cannot trip the constraint mid-transaction.
	for _, relation := range relationPlan {
		if relation.table == "relation_members" {
			assert.Equal(t, []string{"relation_id", "role"}, relation.uniqueBy)
		}
		if relation.table == "group_members" {
			assert.Equal(t, []string{"group_id"}, relation.uniqueBy)
		}
		if relation.table == "messages" {
			assert.Nil(t, relation.uniqueBy)
		}
	}
}

func TestRelationPlanRewritesBothMessageColumns(t *testing.T) {
	columns := map[string]bool{}
	for _, relation := range relationPlan {
		if relation.table == "messages" {
			columns[relation.column] = true
		}
	}
	assert.True(t, columns["sender_entity_id"])
	assert.True(t, columns["recipient_entity_id"])
}

func TestRelationPlanHasNoDuplicateColumns(t *testing.T) {
	seen := map[string]bool{}
	for _, relation := range relationPlan {
		key := relation.table + "." + relation.column
		require.False(t, seen[key], "duplicate plan entry %s", key)
		seen[key] = true
	}
}

func TestDeleteDuplicatesSQL(t *testing.T) {
	relation := relationRef{
		table:    "group_members",
		column:   "entity_id",
		uniqueBy: []string{"group_id"},
	}

	query := relation.deleteDuplicatesSQL()

	assert.Contains(t, query, "DELETE FROM group_members AS src")
	assert.Contains(t, query, "src.entity_id = $1")
	assert.Contains(t, query, "tgt.entity_id = $2")
	assert.Contains(t, query, "tgt.group_id = src.group_id")
}

func TestDeleteDuplicatesSQLJoinsAllKeyColumns(t *testing.T) {
	relation := relationRef{
		table:    "relation_members",
		column:   "entity_id",
		uniqueBy: []string{"relation_id", "role"},
	}

	query := relation.deleteDuplicatesSQL()

	assert.Contains(t, query, "tgt.relation_id = src.relation_id AND tgt.role = src.role")
}

func TestMoveSQL(t *testing.T) {
	relation := relationRef{table: "messages", column: "sender_entity_id"}

	query := relation.moveSQL()

	assert.Equal(t, "UPDATE messages SET sender_entity_id = $1 WHERE sender_entity_id = $2", query)
	assert.False(t, strings.Contains(query, "DELETE"))
}

func TestIndexResolutions(t *testing.T) {
	indexed := indexResolutions([]model.Resolution{
		{Field: constants.ConflictFieldFact, Type: "city", Resolution: constants.ResolutionKeepSource},
		{Field: constants.ConflictFieldIdentifier, Type: "telegram_id", Resolution: constants.ResolutionKeepTarget},
	})

	assert.Equal(t, constants.ResolutionKeepSource,
		indexed[resolutionKey(constants.ConflictFieldFact, "city")])
	assert.Equal(t, constants.ResolutionKeepTarget,
		indexed[resolutionKey(constants.ConflictFieldIdentifier, "telegram_id")])
	assert.Empty(t, indexed[resolutionKey(constants.ConflictFieldFact, "occupation")])
}
