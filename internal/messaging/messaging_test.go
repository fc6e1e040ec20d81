package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryPublisherRecordsInOrder(t *testing.T) {
	p := NewMemoryPublisher()
	ctx := context.Background()

	assert.NoError(t, p.Publish(ctx, SubjectEventPosted, map[string]string{"id": "1"}))
	assert.NoError(t, p.Publish(ctx, SubjectApplicationSubmitted, nil))

	assert.Equal(t, []string{SubjectEventPosted, SubjectApplicationSubmitted}, p.Subjects())
	assert.Len(t, p.Messages(), 2)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), SubjectEventPosted, struct{}{}))
	assert.NoError(t, p.Close())
}
