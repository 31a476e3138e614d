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
	"sync"
	"time"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/cache"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/config"
)

// DedupServiceInterface defines the duplicate detection and merge operations
// of the knowledge graph consolidation engine.
type DedupServiceInterface interface {
	GetDuplicateSuggestions(limit, offset int) (model.DuplicateSuggestions, error)
	PreviewMerge(sourceEntityID, targetEntityID string) (model.MergePreview, error)
	MergeEntities(request model.MergeRequest) (model.MergeResult, error)
	DismissSuggestion(request model.DismissRequest) error
}

// DedupService is the default implementation of the DedupServiceInterface.
type DedupService struct {
	strategies      []DetectionStrategy
	suggestionCache *cache.Cache
}

var (
	dedupService *DedupService
	dedupOnce    sync.Once
)

// GetDedupService creates the shared DedupService instance. The instance is
// a singleton so that the suggestion cache survives across requests.
func GetDedupService() DedupServiceInterface {

	dedupOnce.Do(func() {
		conf := config.GetPKGRuntime().Config.Dedup
		dedupService = &DedupService{
			strategies: []DetectionStrategy{
				orphanIdentifierStrategy{},
				sharedIdentifierStrategy{minNameLength: conf.MinNameLength},
			},
			suggestionCache: cache.NewCache(
				time.Duration(conf.SuggestionCacheTTLSeconds) * time.Second),
		}
	})
	return dedupService
}
