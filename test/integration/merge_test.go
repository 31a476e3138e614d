/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/provider"
	dedupStore "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/store"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
)

func TestMergePreviewReportsConflicts(t *testing.T) {
	resetDB(t)

	sourceID := insertEntity(t, "Telegram 555", constants.EntityTypePerson)
	insertIdentifier(t, sourceID, constants.IdentifierTypeTelegramUsername, "old_handle")
	insertFact(t, sourceID, "occupation", "painter")
	insertFact(t, sourceID, "city", "Berlin")

	targetID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)
	insertIdentifier(t, targetID, constants.IdentifierTypeTelegramUsername, "new_handle")
	insertFact(t, targetID, "occupation", "sculptor")
	insertFact(t, targetID, "city", "Berlin")

	dedupService := provider.NewDedupProvider().GetDedupService()
	preview, err := dedupService.PreviewMerge(sourceID, targetID)
	require.NoError(t, err)

	assert.Equal(t, sourceID, preview.Source.EntityID)
	assert.Equal(t, targetID, preview.Target.EntityID)

	// Identical city values are not a conflict; occupation and the
	// username identifier are.
	require.Len(t, preview.Conflicts, 2)
	byKey := map[string]model.Conflict{}
	for _, conflict := range preview.Conflicts {
		byKey[conflict.Field+":"+conflict.Type] = conflict
	}
	identifierConflict := byKey[constants.ConflictFieldIdentifier+":"+constants.IdentifierTypeTelegramUsername]
	assert.Equal(t, "old_handle", identifierConflict.SourceValue)
	assert.Equal(t, "new_handle", identifierConflict.TargetValue)
	factConflict := byKey[constants.ConflictFieldFact+":occupation"]
	assert.Equal(t, "painter", factConflict.SourceValue)
	assert.Equal(t, "sculptor", factConflict.TargetValue)
}

func TestMergePreviewRejectsSelfMerge(t *testing.T) {
	resetDB(t)

	entityID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)

	dedupService := provider.NewDedupProvider().GetDedupService()
	_, err := dedupService.PreviewMerge(entityID, entityID)
	require.Error(t, err)
	clientError, ok := err.(*errors2.ClientError)
	require.True(t, ok)
	assert.Equal(t, 409, clientError.StatusCode)
}

func TestMergeMovesRelationsAndRetiresSource(t *testing.T) {
	resetDB(t)

	sourceID := insertEntity(t, "Telegram 555", constants.EntityTypePerson)
	identifierID := insertIdentifier(t, sourceID, constants.IdentifierTypeTelegramID, "555")
	factID := insertFact(t, sourceID, "city", "Berlin")
	insertMessage(t, sourceID)
	insertMessage(t, sourceID)
	insertRelationMember(t, "rel-1", "member", sourceID)
	insertGroupMember(t, "group-1", sourceID)
	_, err := testDB.Exec(`INSERT INTO relationship_profiles (entity_id, profile) VALUES ($1, '{}')`, sourceID)
	require.NoError(t, err)

	targetID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)
	// Target already sits in the same group; the duplicate membership must
	// be dropped, not duplicated.
	insertGroupMember(t, "group-1", targetID)
	bystanderID := insertEntity(t, "Jonas Weber", constants.EntityTypePerson)
	insertMessageBetween(t, bystanderID, sourceID)

	dedupService := provider.NewDedupProvider().GetDedupService()
	result, err := dedupService.MergeEntities(model.MergeRequest{
		SourceEntityID: sourceID,
		TargetEntityID: targetID,
		IdentifierIDs:  []string{identifierID},
		FactIDs:        []string{factID},
		MergedBy:       "reviewer",
	})
	require.NoError(t, err)
	assert.Equal(t, targetID, result.MergedEntityID)
	assert.Equal(t, 1, result.IdentifiersMoved)
	assert.Equal(t, 1, result.FactsMoved)

	// Nothing may still point at the source.
	assert.Zero(t, countRows(t, `SELECT count(*) FROM messages WHERE sender_entity_id = $1`, sourceID))
	assert.Zero(t, countRows(t, `SELECT count(*) FROM messages WHERE recipient_entity_id = $1`, sourceID))
	assert.Zero(t, countRows(t, `SELECT count(*) FROM relation_members WHERE entity_id = $1`, sourceID))
	assert.Zero(t, countRows(t, `SELECT count(*) FROM group_members WHERE entity_id = $1`, sourceID))
	assert.Zero(t, countRows(t, `SELECT count(*) FROM identifiers WHERE entity_id = $1`, sourceID))
	assert.Zero(t, countRows(t, `SELECT count(*) FROM relationship_profiles WHERE entity_id = $1`, sourceID))

	assert.Equal(t, 2, countRows(t, `SELECT count(*) FROM messages WHERE sender_entity_id = $1`, targetID))
	assert.Equal(t, 1, countRows(t, `SELECT count(*) FROM messages WHERE recipient_entity_id = $1`, targetID))
	assert.Equal(t, 1, countRows(t, `SELECT count(*) FROM group_members WHERE group_id = 'group-1' AND entity_id = $1`, targetID))
	assert.Equal(t, 1, countRows(t, `SELECT count(*) FROM entities WHERE entity_id = $1 AND deleted_at IS NOT NULL`, sourceID))

	// The retired source must not resurface through the read API.
	_, err = provider.NewDedupProvider().GetDedupService().PreviewMerge(sourceID, targetID)
	require.Error(t, err)
}

func TestMergeIdentifierConflictKeepSource(t *testing.T) {
	resetDB(t)

	sourceID := insertEntity(t, "Telegram 555", constants.EntityTypePerson)
	identifierID := insertIdentifier(t, sourceID, constants.IdentifierTypeTelegramID, "555")
	targetID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)
	insertIdentifier(t, targetID, constants.IdentifierTypeTelegramID, "999")

	dedupService := provider.NewDedupProvider().GetDedupService()
	result, err := dedupService.MergeEntities(model.MergeRequest{
		SourceEntityID: sourceID,
		TargetEntityID: targetID,
		IdentifierIDs:  []string{identifierID},
		Resolutions: []model.Resolution{{
			Field:      constants.ConflictFieldIdentifier,
			Type:       constants.IdentifierTypeTelegramID,
			Resolution: constants.ResolutionKeepSource,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.IdentifiersMoved)

	// Exactly one telegram_id remains on the target, holding the source value.
	assert.Equal(t, 1, countRows(t,
		`SELECT count(*) FROM identifiers WHERE entity_id = $1 AND identifier_type = $2`,
		targetID, constants.IdentifierTypeTelegramID))
	var value string
	require.NoError(t, testDB.QueryRow(
		`SELECT identifier_value FROM identifiers WHERE entity_id = $1 AND identifier_type = $2`,
		targetID, constants.IdentifierTypeTelegramID).Scan(&value))
	assert.Equal(t, "555", value)
}

func TestMergeIdentifierConflictDefaultsToKeepTarget(t *testing.T) {
	resetDB(t)

	sourceID := insertEntity(t, "Telegram 555", constants.EntityTypePerson)
	identifierID := insertIdentifier(t, sourceID, constants.IdentifierTypeTelegramID, "555")
	targetID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)
	insertIdentifier(t, targetID, constants.IdentifierTypeTelegramID, "999")

	dedupService := provider.NewDedupProvider().GetDedupService()
	result, err := dedupService.MergeEntities(model.MergeRequest{
		SourceEntityID: sourceID,
		TargetEntityID: targetID,
		IdentifierIDs:  []string{identifierID},
	})
	require.NoError(t, err)
	assert.Zero(t, result.IdentifiersMoved)

	var value string
	require.NoError(t, testDB.QueryRow(
		`SELECT identifier_value FROM identifiers WHERE entity_id = $1 AND identifier_type = $2`,
		targetID, constants.IdentifierTypeTelegramID).Scan(&value))
	assert.Equal(t, "999", value)
}

func TestMergeFactConflictKeepsHistory(t *testing.T) {
	resetDB(t)

	sourceID := insertEntity(t, "Telegram 555", constants.EntityTypePerson)
	sourceFactID := insertFact(t, sourceID, "occupation", "painter")
	targetID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)
	targetFactID := insertFact(t, targetID, "occupation", "sculptor")

	dedupService := provider.NewDedupProvider().GetDedupService()
	result, err := dedupService.MergeEntities(model.MergeRequest{
		SourceEntityID: sourceID,
		TargetEntityID: targetID,
		FactIDs:        []string{sourceFactID},
		Resolutions: []model.Resolution{{
			Field:      constants.ConflictFieldFact,
			Type:       "occupation",
			Resolution: constants.ResolutionKeepSource,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FactsMoved)

	// The displaced target fact is retired, not deleted.
	assert.Equal(t, 1, countRows(t,
		`SELECT count(*) FROM facts WHERE fact_id = $1 AND valid_until IS NOT NULL`, targetFactID))
	// The source fact is the target's current occupation now.
	assert.Equal(t, 1, countRows(t,
		`SELECT count(*) FROM facts WHERE fact_id = $1 AND entity_id = $2 AND valid_until IS NULL`,
		sourceFactID, targetID))
}

func TestMergeRejectsSelfAndUnknownEntities(t *testing.T) {
	resetDB(t)

	entityID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)

	dedupService := provider.NewDedupProvider().GetDedupService()

	_, err := dedupService.MergeEntities(model.MergeRequest{
		SourceEntityID: entityID, TargetEntityID: entityID})
	clientError, ok := err.(*errors2.ClientError)
	require.True(t, ok)
	assert.Equal(t, 409, clientError.StatusCode)

	_, err = dedupService.MergeEntities(model.MergeRequest{
		SourceEntityID: entityID,
		TargetEntityID: "00000000-0000-0000-0000-000000000000"})
	clientError, ok = err.(*errors2.ClientError)
	require.True(t, ok)
	assert.Equal(t, 404, clientError.StatusCode)
}

func TestMergeAbortsWhenSourceNotLive(t *testing.T) {
	resetDB(t)

	sourceID := insertEntity(t, "Telegram 555", constants.EntityTypePerson)
	identifierID := insertIdentifier(t, sourceID, constants.IdentifierTypeTelegramID, "555")
	insertMessage(t, sourceID)
	targetID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)

	// Retire the source out of band, then drive the executor directly so
	// the transaction reaches its final liveness check and rolls back.
	_, err := testDB.Exec(`UPDATE entities SET deleted_at = now() WHERE entity_id = $1`, sourceID)
	require.NoError(t, err)

	_, err = dedupStore.ExecuteMerge(model.MergeRequest{
		SourceEntityID: sourceID,
		TargetEntityID: targetID,
		IdentifierIDs:  []string{identifierID},
	})
	require.Error(t, err)

	// Nothing moved: the rollback restored every row.
	assert.Equal(t, 1, countRows(t, `SELECT count(*) FROM identifiers WHERE entity_id = $1`, sourceID))
	assert.Equal(t, 1, countRows(t, `SELECT count(*) FROM messages WHERE sender_entity_id = $1`, sourceID))
	assert.Zero(t, countRows(t, `SELECT count(*) FROM messages WHERE sender_entity_id = $1`, targetID))
}

func TestMergeRollsBackOnMidTransactionFailure(t *testing.T) {
	resetDB(t)

	sourceID := insertEntity(t, "Telegram 555", constants.EntityTypePerson)
	identifierID := insertIdentifier(t, sourceID, constants.IdentifierTypeTelegramID, "555")
	insertMessage(t, sourceID)
	targetID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)

	// Drop a relation table the executor rewrites late in the plan so the
	// transaction fails after identifiers and messages have been moved.
	_, err := testDB.Exec(`ALTER TABLE pending_entity_resolutions RENAME TO pending_entity_resolutions_backup`)
	require.NoError(t, err)
	defer func() {
		_, restoreErr := testDB.Exec(`ALTER TABLE pending_entity_resolutions_backup RENAME TO pending_entity_resolutions`)
		require.NoError(t, restoreErr)
	}()

	_, err = dedupStore.ExecuteMerge(model.MergeRequest{
		SourceEntityID: sourceID,
		TargetEntityID: targetID,
		IdentifierIDs:  []string{identifierID},
	})
	require.Error(t, err)

	// Everything already applied inside the transaction must be rolled back.
	assert.Equal(t, 1, countRows(t, `SELECT count(*) FROM identifiers WHERE entity_id = $1`, sourceID))
	assert.Equal(t, 1, countRows(t, `SELECT count(*) FROM messages WHERE sender_entity_id = $1`, sourceID))
	assert.Zero(t, countRows(t, `SELECT count(*) FROM entities WHERE entity_id = $1 AND deleted_at IS NOT NULL`, sourceID))
}

func TestMergeRemovesDismissalsNamingSource(t *testing.T) {
	resetDB(t)

	sourceID := insertEntity(t, "Telegram 555", constants.EntityTypePerson)
	targetID := insertEntity(t, "Clara Meyer", constants.EntityTypePerson)
	otherID := insertEntity(t, "Dmitri Volkov", constants.EntityTypePerson)

	dedupService := provider.NewDedupProvider().GetDedupService()
	require.NoError(t, dedupService.DismissSuggestion(model.DismissRequest{
		PrimaryEntityID: otherID, DismissedEntityID: sourceID}))

	_, err := dedupService.MergeEntities(model.MergeRequest{
		SourceEntityID: sourceID, TargetEntityID: targetID})
	require.NoError(t, err)

	assert.Zero(t, countRows(t,
		`SELECT count(*) FROM merge_dismissals WHERE primary_entity_id = $1 OR dismissed_entity_id = $1`,
		sourceID))
}
