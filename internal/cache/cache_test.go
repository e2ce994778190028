package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"churchcms/internal/domain"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "counsellors:all", Key(""))
	assert.Equal(t, "counsellors:online", Key(string(domain.BookingTypeOnline)))
	assert.Equal(t, "counsellors:in-person", Key(string(domain.BookingTypeInPerson)))
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	var c CounsellorCache = NoopCache{}
	ctx := context.Background()

	c.Set(ctx, "", []domain.Counsellor{{ID: "c1"}})
	got, ok := c.Get(ctx, "")

	assert.False(t, ok)
	assert.Nil(t, got)
	c.Invalidate(ctx)
}
