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

package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	entityStore "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/entity/store"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/log"
)

// PreviewMerge assembles the side-by-side comparison of two live entities
// together with the conflicts a merge would have to resolve. The preview is
// read-only and computed from current values at call time.
func (ds *DedupService) PreviewMerge(sourceEntityID, targetEntityID string) (model.MergePreview, error) {

	logger := log.GetLogger()

	if sourceEntityID == targetEntityID {
		return model.MergePreview{}, errors2.NewClientError(
			errors2.SELF_MERGE, http.StatusConflict)
	}

	source, err := loadEntityMergeData(sourceEntityID)
	if err != nil {
		return model.MergePreview{}, previewError(logger, sourceEntityID, err)
	}
	target, err := loadEntityMergeData(targetEntityID)
	if err != nil {
		return model.MergePreview{}, previewError(logger, targetEntityID, err)
	}

	return model.MergePreview{
		Source:    source,
		Target:    target,
		Conflicts: computeConflicts(source, target),
	}, nil
}

func previewError(logger *log.Logger, entityID string, err error) error {

	var clientError *errors2.ClientError
	if errors.As(err, &clientError) {
		return err
	}
	errorMsg := fmt.Sprintf("Failed to load merge preview data for entity %s", entityID)
	logger.Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.MERGE_PREVIEW.Code,
		Message:     errors2.MERGE_PREVIEW.Message,
		Description: errorMsg,
	}, err)
}

// loadEntityMergeData fetches everything the preview compares for one side:
// the entity row, its identifiers, its current facts and the counts shown to
// reviewers. A missing or soft-deleted entity resolves to a 404 client error.
func loadEntityMergeData(entityID string) (model.EntityMergeData, error) {

	entity, err := entityStore.GetEntity(entityID)
	if err != nil {
		return model.EntityMergeData{}, err
	}
	if entity == nil {
		return model.EntityMergeData{}, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ENTITY_NOT_FOUND.Code,
			Message:     errors2.ENTITY_NOT_FOUND.Message,
			Description: fmt.Sprintf("No live entity record found for entity_id %s", entityID),
		}, http.StatusNotFound)
	}

	identifiers, err := entityStore.GetIdentifiersForEntities([]string{entityID})
	if err != nil {
		return model.EntityMergeData{}, err
	}
	facts, err := entityStore.GetCurrentFacts(entityID)
	if err != nil {
		return model.EntityMergeData{}, err
	}
	messageCounts, err := entityStore.GetMessageCounts([]string{entityID})
	if err != nil {
		return model.EntityMergeData{}, err
	}
	relationCount, err := entityStore.CountRelations(entityID)
	if err != nil {
		return model.EntityMergeData{}, err
	}

	return model.EntityMergeData{
		EntityID:      entity.EntityID,
		Name:          entity.Name,
		EntityType:    entity.EntityType,
		Identifiers:   identifiers[entityID],
		CurrentFacts:  facts,
		MessageCount:  messageCounts[entityID],
		RelationCount: relationCount,
	}, nil
}

// computeConflicts reports every identifier type and fact type held by both
// sides with byte-for-byte different current values. Matching values are not
// conflicts; retired facts never participate. The comparison is symmetric:
// swapping source and target swaps SourceValue and TargetValue only.
func computeConflicts(source, target model.EntityMergeData) []model.Conflict {

	conflicts := []model.Conflict{}

	targetIdentifiers := make(map[string]string, len(target.Identifiers))
	for _, identifier := range target.Identifiers {
		targetIdentifiers[identifier.IdentifierType] = identifier.IdentifierValue
	}
	for _, identifier := range source.Identifiers {
		targetValue, held := targetIdentifiers[identifier.IdentifierType]
		if !held || targetValue == identifier.IdentifierValue {
			continue
		}
		conflicts = append(conflicts, model.Conflict{
			Field:       constants.ConflictFieldIdentifier,
			Type:        identifier.IdentifierType,
			SourceValue: identifier.IdentifierValue,
			TargetValue: targetValue,
		})
	}

	targetFacts := make(map[string]string, len(target.CurrentFacts))
	for _, fact := range target.CurrentFacts {
		targetFacts[fact.FactType] = fact.FactValue
	}
	for _, fact := range source.CurrentFacts {
		targetValue, held := targetFacts[fact.FactType]
		if !held || targetValue == fact.FactValue {
			continue
		}
		conflicts = append(conflicts, model.Conflict{
			Field:       constants.ConflictFieldFact,
			Type:        fact.FactType,
			SourceValue: fact.FactValue,
			TargetValue: targetValue,
		})
	}
	return conflicts
}
