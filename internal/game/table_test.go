package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TableConfig
		wantErr string
	}{
		{name: "too few seats", cfg: TableConfig{Seats: 1, StartingChips: 100, SmallBlind: 1, BigBlind: 2}, wantErr: "seats must be between"},
		{name: "too many seats", cfg: TableConfig{Seats: 11, StartingChips: 100, SmallBlind: 1, BigBlind: 2}, wantErr: "seats must be between"},
		{name: "zero small blind", cfg: TableConfig{Seats: 3, StartingChips: 100, SmallBlind: 0, BigBlind: 2}, wantErr: "small blind"},
		{name: "big blind below small", cfg: TableConfig{Seats: 3, StartingChips: 100, SmallBlind: 5, BigBlind: 2}, wantErr: "smaller than small blind"},
		{name: "no chips", cfg: TableConfig{Seats: 3, SmallBlind: 1, BigBlind: 2}, wantErr: "must start with chips"},
		{name: "chip count mismatch", cfg: TableConfig{Seats: 3, Chips: []int{1, 2}, SmallBlind: 1, BigBlind: 2}, wantErr: "chip counts"},
		{name: "too many names", cfg: TableConfig{Seats: 2, Names: []string{"a", "b", "c"}, StartingChips: 10, SmallBlind: 1, BigBlind: 2}, wantErr: "names"},
		{name: "valid", cfg: TableConfig{Seats: 6, StartingChips: 100, SmallBlind: 1, BigBlind: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Seats, table.Seats())
		})
	}
}

func TestNewTableDefaults(t *testing.T) {
	table, err := NewTable(TableConfig{
		Seats:         5,
		Names:         []string{"Alice", "", "Carol"},
		StartingChips: 500,
		SmallBlind:    1,
		BigBlind:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", table.Player(1).Name)
	assert.Equal(t, "Player2", table.Player(2).Name)
	assert.Equal(t, "Carol", table.Player(3).Name)
	assert.Equal(t, "Player5", table.Player(5).Name)
	assert.Nil(t, table.Player(0))
	assert.Nil(t, table.Player(6))

	assert.Equal(t, 1, table.Button())
	assert.Equal(t, 2, table.SmallBlindSeat())
	assert.Equal(t, 3, table.BigBlindSeat())
	assert.Equal(t, 2500, table.TotalChips())
}

func TestActiveSeatsFrom(t *testing.T) {
	table := newTestTable(t, 5, 500)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, table.ActiveSeatsFrom(1))
	assert.Equal(t, []int{4, 5, 1, 2, 3}, table.ActiveSeatsFrom(4))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, table.ActiveSeatsFrom(6), "wraps past the last seat")

	table.Player(2).Chips = 0
	table.Player(5).Chips = 0
	assert.Equal(t, []int{2, 5}, table.eliminateBusted())

	assert.Equal(t, []int{3, 4, 1}, table.ActiveSeatsFrom(2))
	assert.Equal(t, []int{1, 3, 4}, table.ActiveSeatsFrom(5))
	assert.Equal(t, 3, table.LiveCount())
}

func TestSetButton(t *testing.T) {
	t.Run("advances blinds with the button", func(t *testing.T) {
		table := newTestTable(t, 5, 500)
		table.SetButton(4)
		assert.Equal(t, 4, table.Button())
		assert.Equal(t, 5, table.SmallBlindSeat())
		assert.Equal(t, 1, table.BigBlindSeat())
	})

	t.Run("wraps to seat one", func(t *testing.T) {
		table := newTestTable(t, 5, 500)
		table.SetButton(6)
		assert.Equal(t, 1, table.Button())
		assert.Equal(t, 2, table.SmallBlindSeat())
		assert.Equal(t, 3, table.BigBlindSeat())
	})

	t.Run("blinds skip eliminated seats", func(t *testing.T) {
		table := newTestTable(t, 5, 500)
		table.Player(2).Chips = 0
		table.Player(4).Chips = 0
		table.eliminateBusted()

		table.SetButton(1)
		assert.Equal(t, 1, table.Button())
		assert.Equal(t, 3, table.SmallBlindSeat())
		assert.Equal(t, 5, table.BigBlindSeat())
	})

	t.Run("button skips an eliminated seat", func(t *testing.T) {
		table := newTestTable(t, 4, 500)
		table.Player(3).Chips = 0
		table.eliminateBusted()

		table.SetButton(3)
		assert.Equal(t, 4, table.Button())
		assert.Equal(t, 1, table.SmallBlindSeat())
		assert.Equal(t, 2, table.BigBlindSeat())
	})

	t.Run("heads up", func(t *testing.T) {
		table := newTestTable(t, 2, 500)
		table.SetButton(2)
		assert.Equal(t, 2, table.Button())
		assert.Equal(t, 1, table.SmallBlindSeat())
		assert.Equal(t, 2, table.BigBlindSeat())
	})
}

func TestEliminationIsMonotonic(t *testing.T) {
	table := newTestTable(t, 3, 100)
	p := table.Player(2)
	p.Chips = 0
	assert.Equal(t, []int{2}, table.eliminateBusted())
	assert.True(t, p.KnockedOut)

	// chips arriving later never bring a seat back
	p.Chips = 50
	assert.Empty(t, table.eliminateBusted())
	assert.True(t, p.KnockedOut)
	for _, start := range []int{1, 2, 3} {
		assert.NotContains(t, table.ActiveSeatsFrom(start), 2)
	}
}
