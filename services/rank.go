package services

import "github.com/shopspring/decimal"

type rankThreshold struct {
	min  decimal.Decimal
	name string
}

// Checked from highest to lowest; lower bounds are inclusive, so a user
// sitting exactly on a boundary gets the higher tier.
var rankTable = []rankThreshold{
	{decimal.NewFromInt(10000), "Diamante"},
	{decimal.NewFromInt(5000), "Platina"},
	{decimal.NewFromInt(2500), "Ouro"},
	{decimal.NewFromInt(1000), "Prata"},
	{decimal.NewFromInt(300), "Bronze"},
}

const rankDefault = "Iniciante"

// RankForTotal maps the sum of a user's active investment prices to a rank
// label.
func RankForTotal(totalInvested decimal.Decimal) string {
	for _, tier := range rankTable {
		if totalInvested.GreaterThanOrEqual(tier.min) {
			return tier.name
		}
	}
	return rankDefault
}
