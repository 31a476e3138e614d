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

package model

import "time"

// Entity is a node of the knowledge graph representing one real-world person
// or organization. Entities are never hard-deleted; a merge retires the
// source entity by setting its deletion marker.
type Entity struct {
	EntityID   string    `json:"entity_id"`
	Name       string    `json:"name"`
	EntityType string    `json:"entity_type"`
	PhotoRef   string    `json:"photo_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Identifier is a typed external handle bound to exactly one entity.
// An entity holds at most one identifier per type.
type Identifier struct {
	IdentifierID    string `json:"identifier_id"`
	EntityID        string `json:"entity_id"`
	IdentifierType  string `json:"identifier_type"`
	IdentifierValue string `json:"identifier_value"`
}

// Fact is a typed, time-versioned attribute of an entity. A nil ValidUntil
// marks the fact as current; retiring a fact sets ValidUntil instead of
// deleting the row.
type Fact struct {
	FactID     string     `json:"fact_id"`
	EntityID   string     `json:"entity_id"`
	FactType   string     `json:"fact_type"`
	FactValue  string     `json:"fact_value"`
	CreatedAt  time.Time  `json:"created_at"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

// EntityPage is a paginated entity listing.
type EntityPage struct {
	Entities []Entity `json:"entities"`
	Total    int      `json:"total"`
}
