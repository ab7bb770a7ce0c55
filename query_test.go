/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/testmodels"
)

func seedPlayers(t *testing.T, db *leagueDB, players ...testmodels.Player) {
	t.Helper()
	for _, p := range players {
		require.NoError(t, db.Players.Insert(context.Background(), p))
	}
}

func playerIDs(players []*testmodels.Player) []string {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.PlayerID)
	}
	return ids
}

func TestAllMatchesPartitionCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	db, _ := newLeagueDB(t)

	seedPlayers(t, db,
		testmodels.Player{LeagueID: "League1", PlayerID: "p1", Name: "Ada"},
		testmodels.Player{LeagueID: "LEAGUE1", PlayerID: "p2", Name: "Grace"},
		testmodels.Player{LeagueID: "league1", PlayerID: "p3", Name: "Edsger"},
		testmodels.Player{LeagueID: "OtherLeague", PlayerID: "p4", Name: "Alan"},
	)

	// Casing of neither the stored value nor the argument matters.
	for _, arg := range []string{"League1", "LEAGUE1", "lEaGuE1"} {
		got, err := db.Players.All(ctx, arg)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, playerIDs(got), "All(%q)", arg)
	}

	got, err := db.Players.All(ctx, "otherleague")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p4"}, playerIDs(got))
}

func TestAllReEvaluatesOnEachCall(t *testing.T) {
	ctx := context.Background()
	db, _ := newLeagueDB(t)

	seedPlayers(t, db, testmodels.Player{LeagueID: "League1", PlayerID: "p1"})

	first, err := db.Players.All(ctx, "League1")
	require.NoError(t, err)
	require.Len(t, first, 1)

	seedPlayers(t, db, testmodels.Player{LeagueID: "League1", PlayerID: "p2"})

	second, err := db.Players.All(ctx, "League1")
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestFirstReturnsAMatch(t *testing.T) {
	ctx := context.Background()
	db, _ := newLeagueDB(t)

	seedPlayers(t, db,
		testmodels.Player{LeagueID: "League1", PlayerID: "p1", Name: "Ada"},
		testmodels.Player{LeagueID: "League1", PlayerID: "p2", Name: "Grace"},
	)

	got, err := db.Players.First(ctx, "LEAGUE1")
	require.NoError(t, err)
	assert.Equal(t, "League1", got.LeagueID)
	assert.NotEmpty(t, got.ETag())
}

func TestFirstOnEmptyPartition(t *testing.T) {
	ctx := context.Background()
	db, _ := newLeagueDB(t)

	_, err := db.Players.First(ctx, "Nowhere")
	require.Error(t, err)
	assert.True(t, errors.IsRetrieveFailure(err))
	assert.True(t, errors.IsNotFound(err))
}

func TestQueryIsRestartable(t *testing.T) {
	ctx := context.Background()
	db, _ := newLeagueDB(t)

	seedPlayers(t, db,
		testmodels.Player{LeagueID: "League1", PlayerID: "p1"},
		testmodels.Player{LeagueID: "League2", PlayerID: "p2"},
	)

	q := db.Players.Query()

	first, err := q.Run(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	seedPlayers(t, db, testmodels.Player{LeagueID: "League3", PlayerID: "p3"})

	// The same query value re-evaluates against the live table.
	second, err := q.Run(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 3)
}

func TestQueryPartitionKeyPushdownIsExact(t *testing.T) {
	ctx := context.Background()
	db, _ := newLeagueDB(t)

	seedPlayers(t, db,
		testmodels.Player{LeagueID: "League1", PlayerID: "p1"},
		testmodels.Player{LeagueID: "LEAGUE1", PlayerID: "p2"},
	)

	got, err := db.Players.Query().WithPartitionKey("League1").Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, playerIDs(got), "pushdown match is case-sensitive by contract")
}

func TestQueryWithPageSizeDrainsAllPages(t *testing.T) {
	ctx := context.Background()
	db, _ := newLeagueDB(t)

	seedPlayers(t, db,
		testmodels.Player{LeagueID: "League1", PlayerID: "p1"},
		testmodels.Player{LeagueID: "League1", PlayerID: "p2"},
		testmodels.Player{LeagueID: "League1", PlayerID: "p3"},
	)

	got, err := db.Players.Query().WithPartitionKey("League1").WithPageSize(1).Run(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
