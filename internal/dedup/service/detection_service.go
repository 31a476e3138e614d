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
	"sort"
	"sync"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	dedupStore "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/store"
	entityStore "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/entity/store"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/log"
)

const suggestionCacheKey = "duplicate-suggestions"

// DetectionStrategy is one heuristic for flagging a pair of entities as a
// probable duplicate. Strategies run independently and their hits are merged
// by primary entity afterwards.
type DetectionStrategy interface {
	Name() string
	Run() ([]model.CandidateRow, error)
}

type orphanIdentifierStrategy struct{}

func (orphanIdentifierStrategy) Name() string {
	return constants.ReasonOrphanedTelegramID
}

func (orphanIdentifierStrategy) Run() ([]model.CandidateRow, error) {
	return dedupStore.RunOrphanIdentifierStrategy()
}

type sharedIdentifierStrategy struct {
	minNameLength int
}

func (sharedIdentifierStrategy) Name() string {
	return constants.ReasonSharedIdentifier
}

func (s sharedIdentifierStrategy) Run() ([]model.CandidateRow, error) {
	return dedupStore.RunSharedIdentifierStrategy(s.minNameLength)
}

// GetDuplicateSuggestions runs every detection strategy, groups the hits by
// primary entity and returns the requested page of groups enriched with
// identifiers and message counts. Pagination counts distinct primary
// entities. The grouped result is cached briefly; any merge or dismissal
// flushes the cache.
func (ds *DedupService) GetDuplicateSuggestions(limit, offset int) (model.DuplicateSuggestions, error) {

	logger := log.GetLogger()

	groups, err := ds.detectGroups()
	if err != nil {
		return model.DuplicateSuggestions{}, err
	}

	suggestions := model.DuplicateSuggestions{Total: len(groups), Groups: []model.DuplicateGroup{}}
	page := paginateGroups(groups, limit, offset)
	if len(page) == 0 {
		return suggestions, nil
	}

	enriched, err := enrichGroups(page)
	if err != nil {
		errorMsg := "Failed to enrich duplicate suggestion page"
		logger.Debug(errorMsg, log.Error(err))
		return model.DuplicateSuggestions{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DETECT_DUPLICATES.Code,
			Message:     errors2.DETECT_DUPLICATES.Message,
			Description: errorMsg,
		}, err)
	}

	suggestions.Groups = enriched
	return suggestions, nil
}

func (ds *DedupService) detectGroups() ([]model.DuplicateGroup, error) {

	logger := log.GetLogger()

	if cached, ok := ds.suggestionCache.Get(suggestionCacheKey); ok {
		if groups, ok := cached.([]model.DuplicateGroup); ok {
			return groups, nil
		}
	}

	var (
		waitGroup sync.WaitGroup
		mu        sync.Mutex
		rows      []model.CandidateRow
		runErr    error
	)
	for _, strategy := range ds.strategies {
		waitGroup.Add(1)
		go func(strategy DetectionStrategy) {
			defer waitGroup.Done()
			hits, err := strategy.Run()
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if runErr == nil {
					runErr = err
				}
				return
			}
			rows = append(rows, hits...)
		}(strategy)
	}
	waitGroup.Wait()

	if runErr != nil {
		errorMsg := "Failed to run duplicate detection strategies"
		logger.Debug(errorMsg, log.Error(runErr))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DETECT_DUPLICATES.Code,
			Message:     errors2.DETECT_DUPLICATES.Message,
			Description: errorMsg,
		}, runErr)
	}

	groups := groupCandidates(rows)
	ds.suggestionCache.Set(suggestionCacheKey, groups)
	logger.Debug(fmt.Sprintf("Duplicate detection produced %d groups from %d raw hits",
		len(groups), len(rows)))
	return groups, nil
}

// groupCandidates folds raw strategy hits into one group per primary entity.
// A candidate flagged by both strategies is kept once, under the
// orphaned_telegram_id reason since an orphan match pins the exact numeric
// identifier while a shared-identifier match is only a name collision. The
// group order is deterministic regardless of strategy completion order.
func groupCandidates(rows []model.CandidateRow) []model.DuplicateGroup {

	type groupKey struct {
		primaryID string
		reason    string
	}
	byCandidate := make(map[string]model.CandidateRow)
	for _, row := range rows {
		key := row.PrimaryID + ":" + row.CandidateID
		existing, seen := byCandidate[key]
		if seen && existing.Reason == constants.ReasonOrphanedTelegramID {
			continue
		}
		if seen && row.Reason != constants.ReasonOrphanedTelegramID {
			continue
		}
		byCandidate[key] = row
	}

	grouped := make(map[groupKey][]model.CandidateRow)
	for _, row := range byCandidate {
		key := groupKey{primaryID: row.PrimaryID, reason: row.Reason}
		grouped[key] = append(grouped[key], row)
	}

	keys := make([]groupKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].primaryID != keys[j].primaryID {
			return keys[i].primaryID < keys[j].primaryID
		}
		return keys[i].reason < keys[j].reason
	})

	groups := make([]model.DuplicateGroup, 0, len(keys))
	for _, key := range keys {
		members := grouped[key]
		sort.Slice(members, func(i, j int) bool {
			return members[i].CandidateID < members[j].CandidateID
		})
		group := model.DuplicateGroup{
			PrimaryEntity: model.PrimaryEntity{
				EntityID:   members[0].PrimaryID,
				Name:       members[0].PrimaryName,
				EntityType: members[0].PrimaryType,
			},
			Reason: key.reason,
		}
		for _, member := range members {
			group.Candidates = append(group.Candidates, model.Candidate{
				EntityID:     member.CandidateID,
				Name:         member.CandidateName,
				MatchedValue: member.MatchedValue,
				CreatedAt:    member.CandidateCreatedAt,
			})
		}
		groups = append(groups, group)
	}
	return groups
}

func paginateGroups(groups []model.DuplicateGroup, limit, offset int) []model.DuplicateGroup {

	if offset >= len(groups) {
		return nil
	}
	end := offset + limit
	if end > len(groups) {
		end = len(groups)
	}
	return groups[offset:end]
}

// enrichGroups attaches identifiers and message counts to the page being
// returned. Both lookups are batched over every entity on the page.
func enrichGroups(page []model.DuplicateGroup) ([]model.DuplicateGroup, error) {

	entityIDs := make([]string, 0, len(page)*3)
	for _, group := range page {
		entityIDs = append(entityIDs, group.PrimaryEntity.EntityID)
		for _, candidate := range group.Candidates {
			entityIDs = append(entityIDs, candidate.EntityID)
		}
	}

	identifiers, err := entityStore.GetIdentifiersForEntities(entityIDs)
	if err != nil {
		return nil, err
	}
	messageCounts, err := entityStore.GetMessageCounts(entityIDs)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.DuplicateGroup, len(page))
	for i, group := range page {
		group.PrimaryEntity.Identifiers = identifiers[group.PrimaryEntity.EntityID]
		group.PrimaryEntity.MessageCount = messageCounts[group.PrimaryEntity.EntityID]
		candidates := make([]model.Candidate, len(group.Candidates))
		for j, candidate := range group.Candidates {
			candidate.MessageCount = messageCounts[candidate.EntityID]
			candidates[j] = candidate
		}
		group.Candidates = candidates
		enriched[i] = group
	}
	return enriched, nil
}
