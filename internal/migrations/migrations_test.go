package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_HasConflictKeys(t *testing.T) {
	assert.True(t, strings.Contains(Schema, "UNIQUE (user_id, habit_id, completed_date)"))
	assert.True(t, strings.Contains(Schema, "UNIQUE (user_id, habit_id)"))
	assert.Equal(t, 2, strings.Count(Schema, "ON DELETE CASCADE"))
	assert.Equal(t, strings.Count(Schema, "CREATE TABLE IF NOT EXISTS"), 5)
}
