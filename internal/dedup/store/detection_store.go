package store

import (
	"time"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/dedup/model"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/database/provider"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/database/scripts"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/log"
)

// RunOrphanIdentifierStrategy scans for placeholder-named entities whose
// encoded telegram id belongs to another live entity. Dismissed pairs and
// soft-deleted entities are excluded in the query itself.
func RunOrphanIdentifierStrategy() ([]model.CandidateRow, error) {

	query := scripts.DetectOrphanIdentifierCandidates[provider.NewDBProvider().GetDBType()]
	return runStrategyQuery(query, constants.ReasonOrphanedTelegramID)
}

// RunSharedIdentifierStrategy scans for entities whose normalized display
// name matches a username identifier owned by a different live entity.
func RunSharedIdentifierStrategy(minNameLength int) ([]model.CandidateRow, error) {

	query := scripts.DetectSharedIdentifierCandidates[provider.NewDBProvider().GetDBType()]
	return runStrategyQuery(query, constants.ReasonSharedIdentifier, minNameLength)
}

func runStrategyQuery(query, reason string, args ...interface{}) ([]model.CandidateRow, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for duplicate detection"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := "Failed running duplicate detection query: " + reason
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DETECT_DUPLICATES.Code,
			Message:     errors2.DETECT_DUPLICATES.Message,
			Description: errorMsg,
		}, err)
	}

	rows := []model.CandidateRow{}
	for _, row := range results {
		candidate := model.CandidateRow{
			PrimaryID:     asString(row["primary_id"]),
			PrimaryName:   asString(row["primary_name"]),
			PrimaryType:   asString(row["primary_type"]),
			CandidateID:   asString(row["candidate_id"]),
			CandidateName: asString(row["candidate_name"]),
			MatchedValue:  asString(row["matched_value"]),
			Reason:        reason,
		}
		if t, ok := row["candidate_created_at"].(time.Time); ok {
			candidate.CandidateCreatedAt = t
		}
		rows = append(rows, candidate)
	}
	return rows, nil
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}
