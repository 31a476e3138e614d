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

package model

import (
	"time"

	entityModel "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/entity/model"
)

// CandidateRow is one raw duplicate hit produced by a detection strategy,
// before grouping and enrichment.
type CandidateRow struct {
	PrimaryID          string
	PrimaryName        string
	PrimaryType        string
	CandidateID        string
	CandidateName      string
	CandidateCreatedAt time.Time
	MatchedValue       string
	Reason             string
}

// PrimaryEntity is the already-resolved entity a group of candidates should
// be merged into.
type PrimaryEntity struct {
	EntityID     string                 `json:"entity_id"`
	Name         string                 `json:"name"`
	EntityType   string                 `json:"entity_type"`
	Identifiers  []entityModel.Identifier `json:"identifiers"`
	MessageCount int                    `json:"message_count"`
}

// Candidate is one suspected duplicate of a primary entity.
type Candidate struct {
	EntityID     string    `json:"entity_id"`
	Name         string    `json:"name"`
	MatchedValue string    `json:"matched_value"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

// DuplicateGroup is the set of candidates detected for one primary entity,
// with the reason taxonomy value that produced the group.
type DuplicateGroup struct {
	PrimaryEntity PrimaryEntity `json:"primary_entity"`
	Candidates    []Candidate   `json:"candidates"`
	Reason        string        `json:"reason"`
}

// DuplicateSuggestions is a page of duplicate groups. Total counts distinct
// primary entities, not candidate rows.
type DuplicateSuggestions struct {
	Groups []DuplicateGroup `json:"groups"`
	Total  int              `json:"total"`
}

// EntityMergeData is the comparable state of one side of a merge preview.
type EntityMergeData struct {
	EntityID      string                   `json:"entity_id"`
	Name          string                   `json:"name"`
	EntityType    string                   `json:"entity_type"`
	Identifiers   []entityModel.Identifier `json:"identifiers"`
	CurrentFacts  []entityModel.Fact       `json:"current_facts"`
	MessageCount  int                      `json:"message_count"`
	RelationCount int                      `json:"relation_count"`
}

// Conflict is a field where source and target both hold a current value of
// the same type and the values differ.
type Conflict struct {
	Field       string `json:"field"`
	Type        string `json:"type"`
	SourceValue string `json:"source_value"`
	TargetValue string `json:"target_value"`
}

// MergePreview is the human-reviewable comparison of two entities.
type MergePreview struct {
	Source    EntityMergeData `json:"source"`
	Target    EntityMergeData `json:"target"`
	Conflicts []Conflict      `json:"conflicts"`
}

// Resolution is the caller's decision for one conflicting field.
type Resolution struct {
	Field      string `json:"field"`
	Type       string `json:"type"`
	Resolution string `json:"resolution"`
}

// MergeRequest describes one consolidation of a source entity into a target.
type MergeRequest struct {
	SourceEntityID string       `json:"source_entity_id"`
	TargetEntityID string       `json:"target_entity_id"`
	IdentifierIDs  []string     `json:"identifier_ids"`
	FactIDs        []string     `json:"fact_ids"`
	Resolutions    []Resolution `json:"resolutions"`
	MergedBy       string       `json:"merged_by,omitempty"`
}

// MergeResult reports what a committed merge actually moved. Identifiers and
// facts skipped by a keep_target resolution are not counted.
type MergeResult struct {
	MergedEntityID   string `json:"merged_entity_id"`
	IdentifiersMoved int    `json:"identifiers_moved"`
	FactsMoved       int    `json:"facts_moved"`
}

// DismissRequest marks one candidate pair as permanently not-a-duplicate.
type DismissRequest struct {
	PrimaryEntityID   string `json:"primary_entity_id"`
	DismissedEntityID string `json:"dismissed_entity_id"`
	DismissedBy       string `json:"dismissed_by,omitempty"`
}
