/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package scripts

import (
	"fmt"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
)

var GetEntityByID = map[string]string{
	"postgres": `SELECT entity_id, name, entity_type, photo_ref, created_at FROM entities
        WHERE entity_id = $1 AND deleted_at IS NULL`,
}

var ListEntities = map[string]string{
	"postgres": `SELECT entity_id, name, entity_type, photo_ref, created_at FROM entities
        WHERE deleted_at IS NULL ORDER BY name, entity_id LIMIT $1 OFFSET $2`,
}

var CountEntities = map[string]string{
	"postgres": `SELECT count(*) AS total FROM entities WHERE deleted_at IS NULL`,
}

var GetIdentifiersForEntities = map[string]string{
	"postgres": `SELECT identifier_id, entity_id, identifier_type, identifier_value FROM identifiers
        WHERE entity_id = ANY($1) ORDER BY identifier_type`,
}

var GetCurrentFactsForEntity = map[string]string{
	"postgres": `SELECT fact_id, entity_id, fact_type, fact_value, created_at FROM facts
        WHERE entity_id = $1 AND valid_until IS NULL ORDER BY fact_type`,
}

// GetMessageCountsForEntities counts messages an entity participates in on
// either side of the conversation.
var GetMessageCountsForEntities = map[string]string{
	"postgres": `SELECT entity_id, count(*) AS message_count FROM (
            SELECT sender_entity_id AS entity_id FROM messages WHERE sender_entity_id = ANY($1)
            UNION ALL
            SELECT recipient_entity_id FROM messages WHERE recipient_entity_id = ANY($1)
        ) AS participations GROUP BY entity_id`,
}

var CountRelationsForEntity = map[string]string{
	"postgres": `SELECT count(*) AS relation_count FROM relation_members WHERE entity_id = $1`,
}

// DetectOrphanIdentifierCandidates finds entities whose display name is a raw
// ingestion placeholder (the orphan name prefix followed by a numeric id),
// where the numeric part matches a telegram_id identifier already bound to a
// different live entity and the placeholder entity itself carries no
// telegram_id identifier.
var DetectOrphanIdentifierCandidates = map[string]string{
	"postgres": fmt.Sprintf(`
        SELECT p.entity_id      AS primary_id,
               p.name           AS primary_name,
               p.entity_type    AS primary_type,
               c.entity_id      AS candidate_id,
               c.name           AS candidate_name,
               c.created_at     AS candidate_created_at,
               i.identifier_value AS matched_value
        FROM entities c
        JOIN identifiers i
          ON i.identifier_type = '%[2]s'
         AND i.identifier_value = substring(c.name FROM '^%[1]s([0-9]+)$')
        JOIN entities p
          ON p.entity_id = i.entity_id AND p.deleted_at IS NULL
        WHERE c.deleted_at IS NULL
          AND c.entity_id <> p.entity_id
          AND c.name ~ '^%[1]s[0-9]+$'
          AND NOT EXISTS (
                SELECT 1 FROM identifiers ci
                WHERE ci.entity_id = c.entity_id AND ci.identifier_type = '%[2]s')
          AND NOT EXISTS (
                SELECT 1 FROM merge_dismissals d
                WHERE d.primary_entity_id = p.entity_id AND d.dismissed_entity_id = c.entity_id)
        ORDER BY p.entity_id, c.entity_id`,
		constants.OrphanNamePrefix, constants.IdentifierTypeTelegramID),
}

// DetectSharedIdentifierCandidates finds entities whose normalized display
// name equals a telegram_username identifier value owned by a different live
// entity. $1 is the minimum normalized name length.
var DetectSharedIdentifierCandidates = map[string]string{
	"postgres": fmt.Sprintf(`
        SELECT p.entity_id      AS primary_id,
               p.name           AS primary_name,
               p.entity_type    AS primary_type,
               c.entity_id      AS candidate_id,
               c.name           AS candidate_name,
               c.created_at     AS candidate_created_at,
               i.identifier_value AS matched_value
        FROM entities c
        JOIN identifiers i
          ON i.identifier_type = '%s'
         AND lower(i.identifier_value) = lower(regexp_replace(c.name, '[^a-zA-Z0-9]', '', 'g'))
        JOIN entities p
          ON p.entity_id = i.entity_id AND p.deleted_at IS NULL
        WHERE c.deleted_at IS NULL
          AND c.entity_id <> p.entity_id
          AND length(regexp_replace(c.name, '[^a-zA-Z0-9]', '', 'g')) >= $1
          AND NOT EXISTS (
                SELECT 1 FROM merge_dismissals d
                WHERE d.primary_entity_id = p.entity_id AND d.dismissed_entity_id = c.entity_id)
        ORDER BY p.entity_id, c.entity_id`,
		constants.IdentifierTypeTelegramUsername),
}

var IsSuggestionDismissed = map[string]string{
	"postgres": `SELECT 1 AS present FROM merge_dismissals
        WHERE primary_entity_id = $1 AND dismissed_entity_id = $2`,
}

var InsertSuggestionDismissal = map[string]string{
	"postgres": `INSERT INTO merge_dismissals
        (dismissal_id, primary_entity_id, dismissed_entity_id, dismissed_by, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (primary_entity_id, dismissed_entity_id) DO NOTHING`,
}

// Merge transaction statements. Statements that depend on the dependent
// relation plan are assembled in the dedup store from the plan itself so the
// full set of rewritten tables stays auditable in one place.

var GetSourceIdentifiersForMerge = map[string]string{
	"postgres": `SELECT identifier_id, identifier_type, identifier_value FROM identifiers
        WHERE entity_id = $1 AND identifier_id = ANY($2)`,
}

var GetIdentifierTypesForEntity = map[string]string{
	"postgres": `SELECT identifier_id, identifier_type, identifier_value FROM identifiers
        WHERE entity_id = $1`,
}

var MoveIdentifierToEntity = map[string]string{
	"postgres": `UPDATE identifiers SET entity_id = $1 WHERE identifier_id = $2`,
}

var DeleteIdentifierByTypeForEntity = map[string]string{
	"postgres": `DELETE FROM identifiers WHERE entity_id = $1 AND identifier_type = $2`,
}

var GetSourceCurrentFactsForMerge = map[string]string{
	"postgres": `SELECT fact_id, fact_type, fact_value FROM facts
        WHERE entity_id = $1 AND fact_id = ANY($2) AND valid_until IS NULL`,
}

var GetCurrentFactTypesForEntity = map[string]string{
	"postgres": `SELECT fact_id, fact_type, fact_value FROM facts
        WHERE entity_id = $1 AND valid_until IS NULL`,
}

var RetireFact = map[string]string{
	"postgres": `UPDATE facts SET valid_until = $1 WHERE fact_id = $2`,
}

var MoveFactToEntity = map[string]string{
	"postgres": `UPDATE facts SET entity_id = $1 WHERE fact_id = $2`,
}

var DeleteDismissalsNamingEntity = map[string]string{
	"postgres": `DELETE FROM merge_dismissals
        WHERE primary_entity_id = $1 OR dismissed_entity_id = $1`,
}

var DeleteRelationshipProfile = map[string]string{
	"postgres": `DELETE FROM relationship_profiles WHERE entity_id = $1`,
}

var SoftDeleteEntity = map[string]string{
	"postgres": `UPDATE entities SET deleted_at = $1 WHERE entity_id = $2 AND deleted_at IS NULL`,
}
