package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	tests := []struct {
		name        string
		databaseURL string
		testDBURL   string
		expected    string
	}{
		{"none set", "", "", ""},
		{"database url wins", "postgres://a", "postgres://b", "postgres://a"},
		{"fallback", "", "postgres://b", "postgres://b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDatabaseURL, tt.databaseURL)
			t.Setenv(EnvTestDBURL, tt.testDBURL)

			assert.Equal(t, tt.expected, GetTestDatabaseURL())
			assert.Equal(t, tt.expected == "", ShouldSkipDatabaseTest())
		})
	}
}
