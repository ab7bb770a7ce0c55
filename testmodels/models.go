/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels provides entity types shared by the package tests.
package testmodels

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/tablestore"
)

// Player is a league member keyed by (league, player).
type Player struct {
	tablestore.ConcurrencyToken

	// Identifier of the league the player belongs to.
	LeagueID string `json:"LeagueId"`

	// Unique identifier within the league.
	PlayerID string `json:"PlayerId"`

	// Display name of the player.
	Name string `json:"Name"`

	// Current rating points.
	Rating int `json:"Rating"`

	// Timestamp when the player joined.
	// Format: date-time
	JoinedAt *strfmt.DateTime `json:"JoinedAt,omitempty"`
}

func (p Player) PartitionKey() string { return p.LeagueID }
func (p Player) RowKey() string       { return p.PlayerID }

// Match records one finished game between two players in a league.
type Match struct {
	tablestore.ConcurrencyToken

	// Identifier of the league the match was played in.
	LeagueID string `json:"LeagueId"`

	// Unique identifier within the league.
	MatchID string `json:"MatchId"`

	// Winner and loser player identifiers.
	Winner string `json:"Winner"`
	Loser  string `json:"Loser"`

	// Timestamp when the match finished.
	// Format: date-time
	PlayedAt *strfmt.DateTime `json:"PlayedAt,omitempty"`
}

func (m Match) PartitionKey() string { return m.LeagueID }
func (m Match) RowKey() string       { return m.MatchID }
