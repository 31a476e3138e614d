package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/database/provider"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/database/scripts"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/log"
)

// relationRef names one dependent relation that references entities. The
// merge rewrites every table listed in relationPlan; keeping the set as an
// explicit ordered plan (rather than schema reflection) keeps the executor
// auditable and testable per relation.
type relationRef struct {
	table  string
	column string
	// uniqueBy lists the non-entity columns of a per-entity uniqueness
	// constraint. When set, source rows colliding with an equivalent target
	// row are deleted before the remaining rows are moved. When nil the rows
	// move unconditionally; duplicates are harmless for those tables.
	uniqueBy []string
}

var relationPlan = []relationRef{
	{table: "relation_members", column: "entity_id", uniqueBy: []string{"relation_id", "role"}},
	{table: "group_members", column: "entity_id", uniqueBy: []string{"group_id"}},
	{table: "messages", column: "sender_entity_id"},
	{table: "messages", column: "recipient_entity_id"},
	{table: "interaction_participants", column: "entity_id"},
	{table: "activities", column: "owner_entity_id"},
	{table: "activities", column: "client_entity_id"},
	{table: "commitments", column: "from_entity_id"},
	{table: "commitments", column: "to_entity_id"},
	{table: "entity_events", column: "subject_entity_id"},
	{table: "entity_events", column: "related_entity_id"},
	{table: "transcript_speakers", column: "entity_id"},
	{table: "pending_entity_resolutions", column: "entity_id"},
}

// deleteDuplicatesSQL deletes source rows for which the target already holds
// an equivalent row under the relation's uniqueness key. $1 = source id,
// $2 = target id.
func (r relationRef) deleteDuplicatesSQL() string {
	conditions := make([]string, 0, len(r.uniqueBy))
	for _, col := range r.uniqueBy {
		conditions = append(conditions, fmt.Sprintf("tgt.%s = src.%s", col, col))
	}
	return fmt.Sprintf(
		"DELETE FROM %s AS src WHERE src.%s = $1 AND EXISTS (SELECT 1 FROM %s AS tgt WHERE tgt.%s = $2 AND %s)",
		r.table, r.column, r.table, r.column, strings.Join(conditions, " AND "))
}

// moveSQL re-points rows from the source entity to the target. $1 = target
// id, $2 = source id.
func (r relationRef) moveSQL() string {
	return fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = $2", r.table, r.column, r.column)
}

type mergeRow struct {
	id      string
	rowType string
	value   string
}

// ExecuteMerge consolidates the source entity into the target inside a
// single transaction. Any step failing rolls the whole merge back; nothing
// partial is ever visible to readers.
func ExecuteMerge(request model.MergeRequest) (model.MergeResult, error) {

	logger := log.GetLogger()
	result := model.MergeResult{MergedEntityID: request.TargetEntityID}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for merging %s into %s",
			request.SourceEntityID, request.TargetEntityID)
		logger.Debug(errorMsg, log.Error(err))
		return result, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin merge transaction for %s into %s",
			request.SourceEntityID, request.TargetEntityID)
		logger.Debug(errorMsg, log.Error(err))
		return result, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TX_BEGIN.Code,
			Message:     errors2.TX_BEGIN.Message,
			Description: errorMsg,
		}, err)
	}

	now := time.Now().UTC()
	resolutions := indexResolutions(request.Resolutions)

	identifiersMoved, factsMoved, mergeErr := applyMergeSteps(tx, request, resolutions, now)
	if mergeErr != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			logger.Error("Failed to roll back merge transaction",
				log.String("sourceEntityId", request.SourceEntityID),
				log.String("targetEntityId", request.TargetEntityID),
				log.Error(rollbackErr))
		}
		errorMsg := fmt.Sprintf("Merge of %s into %s rolled back", request.SourceEntityID, request.TargetEntityID)
		logger.Error(errorMsg,
			log.String("sourceEntityId", request.SourceEntityID),
			log.String("targetEntityId", request.TargetEntityID),
			log.Error(mergeErr))
		return result, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MERGE_ENTITIES.Code,
			Message:     errors2.MERGE_ENTITIES.Message,
			Description: errorMsg,
		}, mergeErr)
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit merge of %s into %s", request.SourceEntityID, request.TargetEntityID)
		logger.Error(errorMsg,
			log.String("sourceEntityId", request.SourceEntityID),
			log.String("targetEntityId", request.TargetEntityID),
			log.Error(err))
		return result, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TX_COMMIT.Code,
			Message:     errors2.TX_COMMIT.Message,
			Description: errorMsg,
		}, err)
	}

	result.IdentifiersMoved = identifiersMoved
	result.FactsMoved = factsMoved
	logger.Info(fmt.Sprintf("Merged entity %s into %s (%d identifiers, %d facts moved)",
		request.SourceEntityID, request.TargetEntityID, identifiersMoved, factsMoved))
	return result, nil
}

func applyMergeSteps(tx *sql.Tx, request model.MergeRequest,
	resolutions map[string]string, now time.Time) (int, int, error) {

	dbType := provider.NewDBProvider().GetDBType()

	identifiersMoved, err := mergeIdentifiers(tx, dbType, request, resolutions)
	if err != nil {
		return 0, 0, err
	}

	factsMoved, err := mergeFacts(tx, dbType, request, resolutions, now)
	if err != nil {
		return 0, 0, err
	}

	for _, relation := range relationPlan {
		if relation.uniqueBy != nil {
			if _, err := tx.Exec(relation.deleteDuplicatesSQL(),
				request.SourceEntityID, request.TargetEntityID); err != nil {
				return 0, 0, pkgerrors.Wrapf(err, "deleting duplicate %s rows", relation.table)
			}
		}
		if _, err := tx.Exec(relation.moveSQL(),
			request.TargetEntityID, request.SourceEntityID); err != nil {
			return 0, 0, pkgerrors.Wrapf(err, "moving %s.%s rows", relation.table, relation.column)
		}
	}

	if _, err := tx.Exec(scripts.DeleteDismissalsNamingEntity[dbType], request.SourceEntityID); err != nil {
		return 0, 0, pkgerrors.Wrap(err, "deleting dismissals naming the source")
	}

	if _, err := tx.Exec(scripts.DeleteRelationshipProfile[dbType], request.SourceEntityID); err != nil {
		return 0, 0, pkgerrors.Wrap(err, "dropping relationship profile cache row")
	}

	softDeleted, err := tx.Exec(scripts.SoftDeleteEntity[dbType], now, request.SourceEntityID)
	if err != nil {
		return 0, 0, pkgerrors.Wrap(err, "soft-deleting source entity")
	}
	if affected, err := softDeleted.RowsAffected(); err == nil && affected == 0 {
		// A concurrent merge already retired the source; abort rather than
		// commit a half-applied consolidation.
		return 0, 0, pkgerrors.Errorf("source entity %s no longer live", request.SourceEntityID)
	}

	return identifiersMoved, factsMoved, nil
}

func mergeIdentifiers(tx *sql.Tx, dbType string, request model.MergeRequest,
	resolutions map[string]string) (int, error) {

	sourceIdentifiers, err := queryMergeRows(tx, scripts.GetSourceIdentifiersForMerge[dbType],
		request.SourceEntityID, pq.Array(request.IdentifierIDs))
	if err != nil {
		return 0, pkgerrors.Wrap(err, "loading source identifiers")
	}

	targetIdentifiers, err := queryMergeRows(tx, scripts.GetIdentifierTypesForEntity[dbType],
		request.TargetEntityID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "loading target identifiers")
	}
	targetByType := make(map[string]mergeRow, len(targetIdentifiers))
	for _, identifier := range targetIdentifiers {
		targetByType[identifier.rowType] = identifier
	}

	moved := 0
	for _, identifier := range sourceIdentifiers {
		if _, taken := targetByType[identifier.rowType]; taken {
			// keep_both is unrepresentable for identifiers: the target may
			// hold only one current identifier per type, so it collapses to
			// keep_target and the source identifier is discarded.
			if resolutions[resolutionKey(constants.ConflictFieldIdentifier, identifier.rowType)] !=
				constants.ResolutionKeepSource {
				continue
			}
			if _, err := tx.Exec(scripts.DeleteIdentifierByTypeForEntity[dbType],
				request.TargetEntityID, identifier.rowType); err != nil {
				return 0, pkgerrors.Wrapf(err, "deleting conflicting target identifier %s", identifier.rowType)
			}
		}
		if _, err := tx.Exec(scripts.MoveIdentifierToEntity[dbType],
			request.TargetEntityID, identifier.id); err != nil {
			return 0, pkgerrors.Wrapf(err, "moving identifier %s", identifier.id)
		}
		moved++
	}
	return moved, nil
}

func mergeFacts(tx *sql.Tx, dbType string, request model.MergeRequest,
	resolutions map[string]string, now time.Time) (int, error) {

	sourceFacts, err := queryMergeRows(tx, scripts.GetSourceCurrentFactsForMerge[dbType],
		request.SourceEntityID, pq.Array(request.FactIDs))
	if err != nil {
		return 0, pkgerrors.Wrap(err, "loading source facts")
	}

	targetFacts, err := queryMergeRows(tx, scripts.GetCurrentFactTypesForEntity[dbType],
		request.TargetEntityID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "loading target facts")
	}
	targetByType := make(map[string]mergeRow, len(targetFacts))
	for _, fact := range targetFacts {
		targetByType[fact.rowType] = fact
	}

	moved := 0
	for _, fact := range sourceFacts {
		if existing, taken := targetByType[fact.rowType]; taken {
			resolution := resolutions[resolutionKey(constants.ConflictFieldFact, fact.rowType)]
			if resolution != constants.ResolutionKeepSource && resolution != constants.ResolutionKeepBoth {
				continue
			}
			// Retire the target's current fact instead of deleting it, so
			// the displaced value stays queryable as history.
			if _, err := tx.Exec(scripts.RetireFact[dbType], now, existing.id); err != nil {
				return 0, pkgerrors.Wrapf(err, "retiring target fact %s", existing.id)
			}
		}
		if _, err := tx.Exec(scripts.MoveFactToEntity[dbType],
			request.TargetEntityID, fact.id); err != nil {
			return 0, pkgerrors.Wrapf(err, "moving fact %s", fact.id)
		}
		moved++
	}
	return moved, nil
}

func queryMergeRows(tx *sql.Tx, query string, args ...interface{}) ([]mergeRow, error) {

	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []mergeRow
	for rows.Next() {
		var row mergeRow
		if err := rows.Scan(&row.id, &row.rowType, &row.value); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func indexResolutions(resolutions []model.Resolution) map[string]string {

	indexed := make(map[string]string, len(resolutions))
	for _, resolution := range resolutions {
		indexed[resolutionKey(resolution.Field, resolution.Type)] = resolution.Resolution
	}
	return indexed
}

func resolutionKey(field, fieldType string) string {
	return field + ":" + fieldType
}
