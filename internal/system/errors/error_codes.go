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

package errors

const errorPrefix = "PKG-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	DETECT_DUPLICATES = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while detecting duplicate entities.",
	}

	MERGE_PREVIEW = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while building merge preview.",
	}

	MERGE_ENTITIES = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Entity merge transaction failed.",
	}

	DISMISS_SUGGESTION = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while dismissing merge suggestion.",
	}

	GET_ENTITY = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching entity.",
	}

	TX_BEGIN = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while opening database transaction.",
	}

	TX_COMMIT = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while committing database transaction.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while marshalling JSON.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	ENTITY_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Entity not found.",
		Description: "No live entity record found for the given entity_id.",
	}

	SELF_MERGE = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Cannot merge an entity into itself.",
		Description: "source_entity_id and target_entity_id must differ.",
	}

	INVALID_RESOLUTION = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Invalid conflict resolution.",
		Description: "Resolution must be one of keep_target, keep_source, keep_both.",
	}

	INVALID_PAGINATION = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Invalid pagination parameters.",
	}
)
