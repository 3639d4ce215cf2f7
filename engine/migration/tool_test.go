package migration

import (
	"testing"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/stretchr/testify/assert"
)

func TestRunMongoMigrationSkipsWithoutHost(t *testing.T) {
	assert.NoError(t, RunMongoMigration(config.MongoDBConfig{}))
}
