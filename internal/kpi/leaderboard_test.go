package kpi

import (
	"testing"

	"github.com/jekabolt/salesboard/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rep(name string, sales int64, count int) entity.RepAggregate {
	return entity.RepAggregate{Rep: name, Sales: decimal.NewFromInt(sales), SalesCount: count}
}

func names(reps []entity.RepAggregate) []string {
	out := make([]string, len(reps))
	for i, r := range reps {
		out[i] = r.Rep
	}
	return out
}

func TestRank(t *testing.T) {
	reps := []entity.RepAggregate{rep("A", 10, 1), rep("B", 50, 2), rep("C", 40, 4)}

	assert.Equal(t, []string{"B", "C", "A"}, names(Rank(reps)))
	assert.Equal(t, []string{"B", "C"}, names(Top(reps, 2)))
	assert.Equal(t, 0.5, ShareOfTeam(reps[1], reps))

	// input untouched
	assert.Equal(t, []string{"A", "B", "C"}, names(reps))
}

func TestRank_StableTies(t *testing.T) {
	reps := []entity.RepAggregate{rep("X", 5, 1), rep("Y", 9, 1), rep("Z", 5, 1), rep("W", 5, 1)}
	assert.Equal(t, []string{"Y", "X", "Z", "W"}, names(Rank(reps)))
}

func TestTop_Bounds(t *testing.T) {
	reps := []entity.RepAggregate{rep("A", 1, 1), rep("B", 2, 1)}
	assert.Len(t, Top(reps, PodiumSize), 2)
	assert.Empty(t, Top(reps, 0))
	assert.Empty(t, Top(reps, -1))
	assert.Empty(t, Top(nil, PodiumSize))
}

func TestShareOfTeam_SmallTeam(t *testing.T) {
	reps := []entity.RepAggregate{{Rep: "A", Sales: decimal.RequireFromString("0.5")}}
	// divisor floors at 1
	assert.Equal(t, 0.5, ShareOfTeam(reps[0], reps))
	assert.Equal(t, 0.0, ShareOfTeam(rep("Z", 0, 0), nil))
}

func TestLeaderboard(t *testing.T) {
	reps := []entity.RepAggregate{rep("A", 10, 0), rep("B", 60, 3), rep("C", 30, 2)}
	board := Leaderboard(reps)
	require.Len(t, board, 3)

	assert.Equal(t, "B", board[0].Rep)
	assert.Equal(t, 1, board[0].Position)
	assert.Equal(t, 0.6, board[0].Share)
	assert.Equal(t, "20", board[0].AOV.String())

	assert.Equal(t, "C", board[1].Rep)
	assert.Equal(t, 2, board[1].Position)
	assert.Equal(t, "15", board[1].AOV.String())

	assert.Equal(t, "A", board[2].Rep)
	assert.Equal(t, 3, board[2].Position)
	assert.True(t, board[2].AOV.IsZero())
}
