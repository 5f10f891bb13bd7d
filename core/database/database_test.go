package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect_Unreachable(t *testing.T) {
	cfg := Config{
		Host:           "127.0.0.1",
		Port:           1, // nothing listens here
		User:           "root",
		Password:       "p@ss/word",
		Name:           "beammp",
		TimeoutSeconds: 1,
	}

	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
}
