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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	entityModel "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/entity/model"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
)

func entityData(id string, identifiers map[string]string, facts map[string]string) model.EntityMergeData {
	data := model.EntityMergeData{EntityID: id}
	for identifierType, value := range identifiers {
		data.Identifiers = append(data.Identifiers, entityModel.Identifier{
			EntityID: id, IdentifierType: identifierType, IdentifierValue: value})
	}
	for factType, value := range facts {
		data.CurrentFacts = append(data.CurrentFacts, entityModel.Fact{
			EntityID: id, FactType: factType, FactValue: value})
	}
	return data
}

func TestComputeConflictsReportsDifferingValues(t *testing.T) {
	source := entityData("s",
		map[string]string{"telegram_username": "old"},
		map[string]string{"occupation": "painter", "city": "Berlin"})
	target := entityData("t",
		map[string]string{"telegram_username": "new"},
		map[string]string{"occupation": "sculptor", "city": "Berlin"})

	conflicts := computeConflicts(source, target)

	require.Len(t, conflicts, 2)
	byKey := map[string]model.Conflict{}
	for _, conflict := range conflicts {
		byKey[conflict.Field+":"+conflict.Type] = conflict
	}
	assert.Equal(t, "old", byKey["identifier:telegram_username"].SourceValue)
	assert.Equal(t, "new", byKey["identifier:telegram_username"].TargetValue)
	assert.Equal(t, "painter", byKey["fact:occupation"].SourceValue)
	assert.Equal(t, "sculptor", byKey["fact:occupation"].TargetValue)
}

func TestComputeConflictsIgnoresDisjointAndEqualValues(t *testing.T) {
	source := entityData("s",
		map[string]string{"telegram_id": "1", "email": "a@b.c"},
		map[string]string{"city": "Berlin"})
	target := entityData("t",
		map[string]string{"telegram_id": "1", "phone": "+49"},
		map[string]string{"city": "Berlin", "occupation": "sculptor"})

	assert.Empty(t, computeConflicts(source, target))
}

func TestComputeConflictsIsSymmetric(t *testing.T) {
	source := entityData("s", map[string]string{"telegram_id": "1"}, map[string]string{"city": "Berlin"})
	target := entityData("t", map[string]string{"telegram_id": "2"}, map[string]string{"city": "Paris"})

	forward := computeConflicts(source, target)
	backward := computeConflicts(target, source)

	require.Len(t, forward, 2)
	require.Len(t, backward, 2)
	for i := range forward {
		assert.Equal(t, forward[i].Field, backward[i].Field)
		assert.Equal(t, forward[i].Type, backward[i].Type)
		assert.Equal(t, forward[i].SourceValue, backward[i].TargetValue)
		assert.Equal(t, forward[i].TargetValue, backward[i].SourceValue)
	}
}

func TestComputeConflictsCaseSensitive(t *testing.T) {
	// Conflict detection is byte-for-byte; casing differences are conflicts.
	source := entityData("s", nil, map[string]string{"city": "berlin"})
	target := entityData("t", nil, map[string]string{"city": "Berlin"})

	conflicts := computeConflicts(source, target)
	require.Len(t, conflicts, 1)
	assert.Equal(t, constants.ConflictFieldFact, conflicts[0].Field)
}
