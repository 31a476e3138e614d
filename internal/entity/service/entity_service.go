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

package service

import (
	"fmt"
	"net/http"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/entity/model"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/entity/store"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
)

// EntityServiceInterface defines the read-only entity lookups consumed by
// the review UI alongside the merge engine.
type EntityServiceInterface interface {
	GetEntity(entityID string) (*model.Entity, error)
	ListEntities(limit, offset int) (model.EntityPage, error)
}

// EntityService is the default implementation of the EntityServiceInterface.
type EntityService struct{}

// GetEntityService creates a new instance of EntityService.
func GetEntityService() EntityServiceInterface {

	return &EntityService{}
}

// GetEntity fetches a live entity, failing with a 404 client error when the
// id does not resolve.
func (es *EntityService) GetEntity(entityID string) (*model.Entity, error) {

	entity, err := store.GetEntity(entityID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ENTITY_NOT_FOUND.Code,
			Message:     errors2.ENTITY_NOT_FOUND.Message,
			Description: fmt.Sprintf("No live entity record found for entity_id %s", entityID),
		}, http.StatusNotFound)
	}
	return entity, nil
}

// ListEntities fetches a page of live entities.
func (es *EntityService) ListEntities(limit, offset int) (model.EntityPage, error) {

	return store.ListEntities(limit, offset)
}
