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

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/provider"
	pkgcontext "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/context"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/pagination"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/utils"
)

type DedupHandler struct{}

func NewDedupHandler() *DedupHandler {

	return &DedupHandler{}
}

// GetDuplicateSuggestions handles the paginated duplicate suggestion listing.
func (dh *DedupHandler) GetDuplicateSuggestions(w http.ResponseWriter, r *http.Request) {

	limit, err := pagination.ParseLimit(r)
	if err != nil {
		writePaginationError(w, r, err)
		return
	}
	offset, err := pagination.ParseOffset(r)
	if err != nil {
		writePaginationError(w, r, err)
		return
	}

	dedupService := provider.NewDedupProvider().GetDedupService()
	suggestions, err := dedupService.GetDuplicateSuggestions(limit, offset)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, suggestions)
}

// PreviewMerge handles the read-only merge preview for a source/target pair
// given as query parameters.
func (dh *DedupHandler) PreviewMerge(w http.ResponseWriter, r *http.Request) {

	sourceEntityID := r.URL.Query().Get("source_id")
	targetEntityID := r.URL.Query().Get("target_id")
	if sourceEntityID == "" || targetEntityID == "" {
		utils.WriteErrorResponse(w, errors2.NewClientErrorWithTraceID(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "source_id and target_id query parameters are required.",
		}, http.StatusBadRequest, pkgcontext.GetTraceID(r.Context())))
		return
	}

	dedupService := provider.NewDedupProvider().GetDedupService()
	preview, err := dedupService.PreviewMerge(sourceEntityID, targetEntityID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, preview)
}

// MergeEntities handles the merge execution request.
func (dh *DedupHandler) MergeEntities(w http.ResponseWriter, r *http.Request) {

	var request model.MergeRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.WriteErrorResponse(w, errors2.NewClientErrorWithTraceID(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "merge request"),
		}, http.StatusBadRequest, pkgcontext.GetTraceID(r.Context())))
		return
	}
	if request.SourceEntityID == "" || request.TargetEntityID == "" {
		utils.WriteErrorResponse(w, errors2.NewClientErrorWithTraceID(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "source_entity_id and target_entity_id are required.",
		}, http.StatusBadRequest, pkgcontext.GetTraceID(r.Context())))
		return
	}

	dedupService := provider.NewDedupProvider().GetDedupService()
	result, err := dedupService.MergeEntities(request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// DismissSuggestion handles marking a candidate pair as not-a-duplicate.
func (dh *DedupHandler) DismissSuggestion(w http.ResponseWriter, r *http.Request) {

	var request model.DismissRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.WriteErrorResponse(w, errors2.NewClientErrorWithTraceID(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "dismiss request"),
		}, http.StatusBadRequest, pkgcontext.GetTraceID(r.Context())))
		return
	}
	if request.PrimaryEntityID == "" || request.DismissedEntityID == "" {
		utils.WriteErrorResponse(w, errors2.NewClientErrorWithTraceID(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "primary_entity_id and dismissed_entity_id are required.",
		}, http.StatusBadRequest, pkgcontext.GetTraceID(r.Context())))
		return
	}

	dedupService := provider.NewDedupProvider().GetDedupService()
	if err := dedupService.DismissSuggestion(request); err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusNoContent, nil)
}

func writePaginationError(w http.ResponseWriter, r *http.Request, err error) {

	utils.WriteErrorResponse(w, errors2.NewClientErrorWithTraceID(errors2.ErrorMessage{
		Code:        errors2.INVALID_PAGINATION.Code,
		Message:     errors2.INVALID_PAGINATION.Message,
		Description: err.Error(),
	}, http.StatusBadRequest, pkgcontext.GetTraceID(r.Context())))
}
