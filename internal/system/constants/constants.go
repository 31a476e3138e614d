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

package constants

type contextKey string

const (
	ApiBasePath = "/api/v1"

	TraceContextKey contextKey = "traceId"
)

// Entity types.
const (
	EntityTypePerson       = "person"
	EntityTypeOrganization = "organization"
	EntityTypeOther        = "other"
)

// Identifier types the detection strategies key on.
const (
	IdentifierTypeTelegramID       = "telegram_id"
	IdentifierTypeTelegramUsername = "telegram_username"
)

// OrphanNamePrefix is the display-name prefix the ingestion pipeline assigns
// to entities created from a bare numeric identifier.
const OrphanNamePrefix = "Telegram "

// Duplicate suggestion reasons. orphaned_telegram_id is a persisted taxonomy
// value consumed by clients; do not rename.
const (
	ReasonOrphanedTelegramID = "orphaned_telegram_id"
	ReasonSharedIdentifier   = "shared_identifier"
)

// Conflict resolution policies.
const (
	ResolutionKeepTarget = "keep_target"
	ResolutionKeepSource = "keep_source"
	ResolutionKeepBoth   = "keep_both"
)

// Conflict field kinds.
const (
	ConflictFieldIdentifier = "identifier"
	ConflictFieldFact       = "fact"
)
