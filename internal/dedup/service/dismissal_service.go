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
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	dedupStore "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/store"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/log"
)

// DismissSuggestion records that the given candidate pair is not a
// duplicate, permanently excluding it from future detection runs. The
// operation is idempotent: dismissing an already-dismissed pair succeeds
// without writing a second ledger row.
func (ds *DedupService) DismissSuggestion(request model.DismissRequest) error {

	if err := requireLiveEntity(request.PrimaryEntityID); err != nil {
		return err
	}
	if err := requireLiveEntity(request.DismissedEntityID); err != nil {
		return err
	}

	dismissed, err := dedupStore.IsSuggestionDismissed(request.PrimaryEntityID, request.DismissedEntityID)
	if err != nil {
		return err
	}
	if dismissed {
		return nil
	}

	if err := dedupStore.InsertSuggestionDismissal(
		request.PrimaryEntityID, request.DismissedEntityID, request.DismissedBy); err != nil {
		return err
	}

	ds.suggestionCache.Flush()

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   request.DismissedBy,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      request.DismissedEntityID,
		TargetType:    log.TargetTypeMergeSuggestion,
		ActionID:      log.ActionDismissSuggestion,
		Data: map[string]interface{}{
			"primary_entity_id": request.PrimaryEntityID,
		},
	})
	return nil
}
