package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDBService_RequiresConnectionString(t *testing.T) {
	service, err := NewDBService("")

	assert.Nil(t, service)
	assert.Error(t, err)
}
