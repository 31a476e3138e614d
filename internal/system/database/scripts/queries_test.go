package scripts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mityayka1/Personal-Knowledge-Graph-sub001/internal/system/constants"
)

func TestOrphanDetectionQueryUsesConfiguredPrefix(t *testing.T) {
	query := DetectOrphanIdentifierCandidates["postgres"]

	assert.Contains(t, query, "'^"+constants.OrphanNamePrefix+"([0-9]+)$'")
	assert.Contains(t, query, "'^"+constants.OrphanNamePrefix+"[0-9]+$'")
	assert.Contains(t, query, "'"+constants.IdentifierTypeTelegramID+"'")
	assert.False(t, strings.Contains(query, "%"), "unrendered format verb")
}

func TestSharedIdentifierQueryUsesConfiguredType(t *testing.T) {
	query := DetectSharedIdentifierCandidates["postgres"]

	assert.Contains(t, query, "'"+constants.IdentifierTypeTelegramUsername+"'")
	assert.False(t, strings.Contains(query, "%s"), "unrendered format verb")
}
