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

package handler

import (
	"net/http"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/entity/provider"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/pagination"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/utils"
)

type EntityHandler struct{}

func NewEntityHandler() *EntityHandler {

	return &EntityHandler{}
}

// GetEntity handles fetching a single entity by id.
func (eh *EntityHandler) GetEntity(w http.ResponseWriter, r *http.Request) {

	entityID := r.PathValue("entityId")
	if entityID == "" {
		http.NotFound(w, r)
		return
	}

	entityService := provider.NewEntityProvider().GetEntityService()
	entity, err := entityService.GetEntity(entityID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, entity)
}

// ListEntities handles the paginated entity listing.
func (eh *EntityHandler) ListEntities(w http.ResponseWriter, r *http.Request) {

	limit, err := pagination.ParseLimit(r)
	if err != nil {
		utils.WriteErrorResponse(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_PAGINATION.Code,
			Message:     errors2.INVALID_PAGINATION.Message,
			Description: err.Error(),
		}, http.StatusBadRequest))
		return
	}
	offset, err := pagination.ParseOffset(r)
	if err != nil {
		utils.WriteErrorResponse(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_PAGINATION.Code,
			Message:     errors2.INVALID_PAGINATION.Message,
			Description: err.Error(),
		}, http.StatusBadRequest))
		return
	}

	entityService := provider.NewEntityProvider().GetEntityService()
	page, err := entityService.ListEntities(limit, offset)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, page)
}
