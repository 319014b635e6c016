package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllFailed_EmptyBatch(t *testing.T) {
	assert.False(t, AllFailed(nil))
	assert.False(t, AllFailed([]IngestOutcome{}))
}

func TestAllFailed_PartialSuccess(t *testing.T) {
	outcomes := []IngestOutcome{
		{Identifier: "a", Status: StatusError, ErrorKind: ErrorKindNoTranscript},
		{Identifier: "b", Status: StatusOK, ChunkCount: 4},
	}

	assert.False(t, AllFailed(outcomes))
}

func TestAllFailed_AllErrors(t *testing.T) {
	outcomes := []IngestOutcome{
		{Identifier: "a", Status: StatusError, ErrorKind: ErrorKindMetadataFetch},
		{Identifier: "b", Status: StatusError, ErrorKind: ErrorKindUnknown},
	}

	assert.True(t, AllFailed(outcomes))
}

func TestAllFailed_EmptyOutcomeIsNotFailure(t *testing.T) {
	outcomes := []IngestOutcome{
		{Identifier: "a", Status: StatusError, ErrorKind: ErrorKindUnknown},
		{Identifier: "b", Status: StatusEmpty},
	}

	assert.False(t, AllFailed(outcomes))
}

func TestSucceededCount(t *testing.T) {
	outcomes := []IngestOutcome{
		{Status: StatusOK},
		{Status: StatusError},
		{Status: StatusOK},
		{Status: StatusEmpty},
	}

	assert.Equal(t, 2, SucceededCount(outcomes))
}
