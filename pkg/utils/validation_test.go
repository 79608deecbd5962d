package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type insertRequest struct {
	Value    string `validate:"required,max=64"`
	Variant  string `validate:"oneof=singly doubly circular"`
	MaxCount int    `validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(insertRequest{Value: "10", Variant: "doubly"}))

	err := ValidateStruct(insertRequest{Variant: "skip", MaxCount: -1})
	require.Error(t, err)
	assert.Equal(t,
		"value is required; variant must be one of: singly doubly circular; max_count must be at least 0",
		err.Error())
}

func TestToSnake(t *testing.T) {
	tests := map[string]string{
		"Value":         "value",
		"ServerAddress": "server_address",
		"DynamoDBTable": "dynamo_db_table",
		"AWSRegion":     "aws_region",
	}
	for in, want := range tests {
		assert.Equal(t, want, toSnake(in), in)
	}
}

func TestNowRFC3339(t *testing.T) {
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`, NowRFC3339())
}
