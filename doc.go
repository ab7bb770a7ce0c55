/*
Package tablestore maps typed Go schemas onto a partitioned cloud key-value
table store, providing per-table CRUD and partition-scoped queries over a
remote table client.

A schema is a struct whose fields declare the database's tables. Opening the
schema discovers those fields, binds each one to a remote table named after
the field, and creates tables that do not exist yet:

	type Player struct {
	    tablestore.ConcurrencyToken
	    LeagueID string `dynamodbav:"LeagueId"`
	    PlayerID string `dynamodbav:"PlayerId"`
	    Name     string
	    Rating   int
	}

	func (p Player) PartitionKey() string { return p.LeagueID }
	func (p Player) RowKey() string       { return p.PlayerID }

	type LeagueDB struct {
	    tablestore.DB
	    Players *tablestore.Table[Player]
	    Matches *tablestore.Table[Match] `tablestore:"MatchHistory"`
	}

	db := &LeagueDB{}
	err := tablestore.Open(ctx, "Region=us-east-1;AccessKey=...;SecretKey=...", db)

The construction plan for a schema type (which fields to populate and how)
is computed by reflection once per concrete type and cached for later Opens.

Bound tables expose the operation set:

	err = db.Players.Insert(ctx, player)
	p, err := db.Players.Get(ctx, "league1", "p42")
	p.Rating = 1620
	err = db.Players.Update(ctx, p)
	err = db.Players.Delete(ctx, p)
	matches, err := db.Players.All(ctx, "LEAGUE1") // partition match is case-insensitive

Update and Delete use the store's optimistic-concurrency contract: Get
stamps each entity with the store's token, and a stale token fails with
status 412. Failures carry the remote status code and the operation kind;
see the errors package.

Arbitrary structured queries stream through ExecuteQuery:

	for result := range db.Players.ExecuteQuery(ctx, spec, storagemodels.WithPageSize(100)) {
	    if result.Error != nil {
	        return result.Error
	    }
	    process(result.Item)
	}

This layer performs no retries, no batching and no caching; every operation
is one synchronous round trip through the table client.
*/
package tablestore
