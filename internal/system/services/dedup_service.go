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

package services

import (
	"fmt"
	"net/http"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/handler"
)

// DedupService wires the duplicate detection and merge endpoints. The
// duplicate routes are registered before the wildcard entity route and win
// on pattern specificity.
type DedupService struct {
	dedupHandler *handler.DedupHandler
}

func NewDedupService(mux *http.ServeMux, apiBasePath string) *DedupService {

	instance := &DedupService{
		dedupHandler: handler.NewDedupHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *DedupService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("GET %s/entities/duplicates", apiBasePath),
		s.dedupHandler.GetDuplicateSuggestions)
	mux.HandleFunc(fmt.Sprintf("POST %s/entities/duplicates/dismiss", apiBasePath),
		s.dedupHandler.DismissSuggestion)
	mux.HandleFunc(fmt.Sprintf("GET %s/entities/merge/preview", apiBasePath),
		s.dedupHandler.PreviewMerge)
	mux.HandleFunc(fmt.Sprintf("POST %s/entities/merge", apiBasePath),
		s.dedupHandler.MergeEntities)
}
