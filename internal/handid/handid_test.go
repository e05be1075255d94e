package handid

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhand/internal/randutil"
)

func TestNextIsValid(t *testing.T) {
	id := NewGenerator(nil, nil).Next()
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestNextIsUnique(t *testing.T) {
	g := NewGenerator(nil, nil)
	seen := make(map[string]bool)
	for range 200 {
		id := g.Next()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNextIsDeterministicWithMockClock(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	a := NewGenerator(clock, randutil.New(1)).Next()
	b := NewGenerator(clock, randutil.New(1)).Next()
	assert.Equal(t, a, b)
}

func TestIDsSortByTime(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	g := NewGenerator(clock, randutil.New(2))

	first := g.Next()
	clock.Advance(time.Second)
	second := g.Next()

	assert.Less(t, first, second)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid", id: "01h2xcejqtf2nbrexx3vqjhp41"},
		{name: "too short", id: "01h2", wantErr: true},
		{name: "first char too high", id: "81h2xcejqtf2nbrexx3vqjhp41", wantErr: true},
		{name: "bad character", id: "01h2xcejqtf2nbrexx3vqjhpu1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
