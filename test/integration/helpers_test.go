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

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func resetDB(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(`TRUNCATE entities, identifiers, facts, merge_dismissals, messages,
        interaction_participants, relation_members, group_members, activities, commitments,
        entity_events, transcript_speakers, pending_entity_resolutions, relationship_profiles CASCADE`)
	require.NoError(t, err)
}

func insertEntity(t *testing.T, name, entityType string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := testDB.Exec(
		`INSERT INTO entities (entity_id, name, entity_type) VALUES ($1, $2, $3)`,
		id, name, entityType)
	require.NoError(t, err)
	return id
}

func insertIdentifier(t *testing.T, entityID, identifierType, value string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := testDB.Exec(
		`INSERT INTO identifiers (identifier_id, entity_id, identifier_type, identifier_value)
         VALUES ($1, $2, $3, $4)`,
		id, entityID, identifierType, value)
	require.NoError(t, err)
	return id
}

func insertFact(t *testing.T, entityID, factType, value string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := testDB.Exec(
		`INSERT INTO facts (fact_id, entity_id, fact_type, fact_value) VALUES ($1, $2, $3, $4)`,
		id, entityID, factType, value)
	require.NoError(t, err)
	return id
}

func insertMessage(t *testing.T, senderEntityID string) string {
	t.Helper()
	return insertMessageBetween(t, senderEntityID, "")
}

func insertMessageBetween(t *testing.T, senderEntityID, recipientEntityID string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := testDB.Exec(
		`INSERT INTO messages (message_id, sender_entity_id, recipient_entity_id, body)
         VALUES ($1, $2, NULLIF($3, ''), 'hi')`,
		id, senderEntityID, recipientEntityID)
	require.NoError(t, err)
	return id
}

func insertRelationMember(t *testing.T, relationID, role, entityID string) {
	t.Helper()
	_, err := testDB.Exec(
		`INSERT INTO relation_members (relation_id, role, entity_id) VALUES ($1, $2, $3)`,
		relationID, role, entityID)
	require.NoError(t, err)
}

func insertGroupMember(t *testing.T, groupID, entityID string) {
	t.Helper()
	_, err := testDB.Exec(
		`INSERT INTO group_members (group_id, entity_id) VALUES ($1, $2)`,
		groupID, entityID)
	require.NoError(t, err)
}

func countRows(t *testing.T, query string, args ...interface{}) int {
	t.Helper()
	var count int
	require.NoError(t, testDB.QueryRow(query, args...).Scan(&count))
	return count
}
