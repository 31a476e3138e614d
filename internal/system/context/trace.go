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

package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
)

// WithTraceID attaches a trace id to the context, generating one if empty.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, constants.TraceContextKey, traceID)
}

// GetTraceID returns the trace id carried by the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(constants.TraceContextKey).(string); ok {
		return v
	}
	return ""
}
