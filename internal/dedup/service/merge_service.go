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
	"fmt"
	"net/http"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	dedupStore "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/store"
	entityStore "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/entity/store"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/log"
)

// MergeEntities validates and executes the consolidation of the source
// entity into the target. Validation failures never touch the store; the
// store call itself is a single transaction, so a failed merge leaves both
// entities exactly as they were.
func (ds *DedupService) MergeEntities(request model.MergeRequest) (model.MergeResult, error) {

	logger := log.GetLogger()

	if request.SourceEntityID == request.TargetEntityID {
		return model.MergeResult{}, errors2.NewClientError(
			errors2.SELF_MERGE, http.StatusConflict)
	}
	if err := validateResolutions(request.Resolutions); err != nil {
		return model.MergeResult{}, err
	}
	if err := requireLiveEntity(request.SourceEntityID); err != nil {
		return model.MergeResult{}, err
	}
	if err := requireLiveEntity(request.TargetEntityID); err != nil {
		return model.MergeResult{}, err
	}

	result, err := dedupStore.ExecuteMerge(request)
	if err != nil {
		return model.MergeResult{}, err
	}

	ds.suggestionCache.Flush()

	logger.Audit(log.AuditEvent{
		InitiatorID:   request.MergedBy,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      request.TargetEntityID,
		TargetType:    log.TargetTypeEntity,
		ActionID:      log.ActionMergeEntities,
		Data: map[string]interface{}{
			"source_entity_id":  request.SourceEntityID,
			"identifiers_moved": result.IdentifiersMoved,
			"facts_moved":       result.FactsMoved,
		},
	})
	return result, nil
}

func validateResolutions(resolutions []model.Resolution) error {

	for _, resolution := range resolutions {
		if resolution.Field != constants.ConflictFieldIdentifier &&
			resolution.Field != constants.ConflictFieldFact {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_RESOLUTION.Code,
				Message:     errors2.INVALID_RESOLUTION.Message,
				Description: fmt.Sprintf("Unknown conflict field %q", resolution.Field),
			}, http.StatusBadRequest)
		}
		switch resolution.Resolution {
		case constants.ResolutionKeepTarget, constants.ResolutionKeepSource, constants.ResolutionKeepBoth:
		default:
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_RESOLUTION.Code,
				Message:     errors2.INVALID_RESOLUTION.Message,
				Description: fmt.Sprintf("Unknown resolution %q for %s type %s",
					resolution.Resolution, resolution.Field, resolution.Type),
			}, http.StatusBadRequest)
		}
	}
	return nil
}

func requireLiveEntity(entityID string) error {

	entity, err := entityStore.GetEntity(entityID)
	if err != nil {
		return err
	}
	if entity == nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ENTITY_NOT_FOUND.Code,
			Message:     errors2.ENTITY_NOT_FOUND.Message,
			Description: fmt.Sprintf("No live entity record found for entity_id %s", entityID),
		}, http.StatusNotFound)
	}
	return nil
}
