package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/database/provider"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/database/scripts"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/log"
)

// IsSuggestionDismissed reports whether the ordered pair has been dismissed.
func IsSuggestionDismissed(primaryID, dismissedID string) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for dismissal lookup: %s/%s", primaryID, dismissedID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.IsSuggestionDismissed[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, primaryID, dismissedID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed checking dismissal for pair: %s/%s", primaryID, dismissedID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXECUTE_QUERY.Code,
			Message:     errors2.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}
	return len(results) > 0, nil
}

// InsertSuggestionDismissal records a dismissal. The pair carries a unique
// constraint, so a concurrent duplicate insert degrades to a no-op.
func InsertSuggestionDismissal(primaryID, dismissedID, dismissedBy string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for dismissing pair: %s/%s", primaryID, dismissedID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.InsertSuggestionDismissal[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, uuid.NewString(), primaryID, dismissedID, dismissedBy, time.Now().UTC())
	if err != nil {
		errorMsg := fmt.Sprintf("Failed inserting dismissal for pair: %s/%s", primaryID, dismissedID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DISMISS_SUGGESTION.Code,
			Message:     errors2.DISMISS_SUGGESTION.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Merge suggestion dismissed: %s will no longer be suggested for %s", dismissedID, primaryID))
	return nil
}
