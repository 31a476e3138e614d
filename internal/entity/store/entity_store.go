package store

import (
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/entity/model"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/database/provider"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/database/scripts"
	errors2 "github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/errors"
	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/log"
)

// GetEntity fetches a live entity by id. Returns nil when no live entity
// exists for the id.
func GetEntity(entityID string) (*model.Entity, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching entity: %s", entityID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetEntityByID[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, entityID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed fetching entity with id: %s", entityID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ENTITY.Code,
			Message:     errors2.GET_ENTITY.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No live entity found with the given id: %s", entityID))
		return nil, nil
	}

	entity := scanEntityRow(results[0])
	return &entity, nil
}

// ListEntities fetches a page of live entities ordered by name.
func ListEntities(limit, offset int) (model.EntityPage, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for listing entities"
		logger.Debug(errorMsg, log.Error(err))
		return model.EntityPage{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	results, err := dbClient.ExecuteQuery(scripts.ListEntities[dbType], limit, offset)
	if err != nil {
		errorMsg := "Failed listing entities"
		logger.Debug(errorMsg, log.Error(err))
		return model.EntityPage{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ENTITY.Code,
			Message:     errors2.GET_ENTITY.Message,
			Description: errorMsg,
		}, err)
	}

	page := model.EntityPage{Entities: []model.Entity{}}
	for _, row := range results {
		page.Entities = append(page.Entities, scanEntityRow(row))
	}

	countRows, err := dbClient.ExecuteQuery(scripts.CountEntities[dbType])
	if err != nil {
		errorMsg := "Failed counting entities"
		logger.Debug(errorMsg, log.Error(err))
		return model.EntityPage{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ENTITY.Code,
			Message:     errors2.GET_ENTITY.Message,
			Description: errorMsg,
		}, err)
	}
	if len(countRows) > 0 {
		page.Total = int(countRows[0]["total"].(int64))
	}

	return page, nil
}

// GetIdentifiersForEntities batch-fetches the current identifiers of the
// given entities in a single round trip, keyed by entity id.
func GetIdentifiersForEntities(entityIDs []string) (map[string][]model.Identifier, error) {

	identifiers := make(map[string][]model.Identifier)
	if len(entityIDs) == 0 {
		return identifiers, nil
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for batch identifier fetch"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetIdentifiersForEntities[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, pq.Array(entityIDs))
	if err != nil {
		errorMsg := "Failed batch-fetching identifiers"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXECUTE_QUERY.Code,
			Message:     errors2.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}

	for _, row := range results {
		identifier := model.Identifier{
			IdentifierID:    asString(row["identifier_id"]),
			EntityID:        asString(row["entity_id"]),
			IdentifierType:  asString(row["identifier_type"]),
			IdentifierValue: asString(row["identifier_value"]),
		}
		identifiers[identifier.EntityID] = append(identifiers[identifier.EntityID], identifier)
	}
	return identifiers, nil
}

// GetCurrentFacts fetches the current (not retired) facts of an entity.
func GetCurrentFacts(entityID string) ([]model.Fact, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching facts of entity: %s", entityID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetCurrentFactsForEntity[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, entityID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed fetching current facts of entity: %s", entityID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXECUTE_QUERY.Code,
			Message:     errors2.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}

	facts := []model.Fact{}
	for _, row := range results {
		fact := model.Fact{
			FactID:    asString(row["fact_id"]),
			EntityID:  asString(row["entity_id"]),
			FactType:  asString(row["fact_type"]),
			FactValue: asString(row["fact_value"]),
		}
		if t, ok := row["created_at"].(time.Time); ok {
			fact.CreatedAt = t
		}
		facts = append(facts, fact)
	}
	return facts, nil
}

// GetMessageCounts batch-fetches message counts for the given entities in a
// single round trip. Entities with no messages are absent from the result.
func GetMessageCounts(entityIDs []string) (map[string]int, error) {

	counts := make(map[string]int)
	if len(entityIDs) == 0 {
		return counts, nil
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for batch message count fetch"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetMessageCountsForEntities[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, pq.Array(entityIDs))
	if err != nil {
		errorMsg := "Failed batch-fetching message counts"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXECUTE_QUERY.Code,
			Message:     errors2.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}

	for _, row := range results {
		counts[asString(row["entity_id"])] = int(row["message_count"].(int64))
	}
	return counts, nil
}

// CountRelations returns how many named relations the entity participates in.
func CountRelations(entityID string) (int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for counting relations of entity: %s", entityID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.CountRelationsForEntity[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, entityID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed counting relations of entity: %s", entityID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXECUTE_QUERY.Code,
			Message:     errors2.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return int(results[0]["relation_count"].(int64)), nil
}

func scanEntityRow(row map[string]interface{}) model.Entity {

	entity := model.Entity{
		EntityID:   asString(row["entity_id"]),
		Name:       asString(row["name"]),
		EntityType: asString(row["entity_type"]),
		PhotoRef:   asString(row["photo_ref"]),
	}
	if t, ok := row["created_at"].(time.Time); ok {
		entity.CreatedAt = t
	}
	return entity
}

// asString tolerates NULL columns and drivers that hand text back as []byte.
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
