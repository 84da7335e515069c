package ioschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatCollationSQL_FormatsCorrectly verifies SQL
// formatting.
func TestFormatCollationSQL_FormatsCorrectly(t *testing.T) {
	template := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE TEXT COLLATE "C"`

	result := formatCollationSQL(template, `"occurrences"`, "habitat")

	expected := `ALTER TABLE "occurrences" ALTER COLUMN ` +
		`habitat TYPE TEXT COLLATE "C"`
	assert.Equal(t, expected, result)
}

func TestMongoIndexes(t *testing.T) {
	idx := mongoIndexes()
	assert.Len(t, idx, 4)
}
