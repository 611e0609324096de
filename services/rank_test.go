package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRankForTotal(t *testing.T) {
	cases := []struct {
		total string
		want  string
	}{
		{"0", "Iniciante"},
		{"299.99", "Iniciante"},
		{"300", "Bronze"},
		{"999.99", "Bronze"},
		{"1000", "Prata"},
		{"2500", "Ouro"},
		{"5000", "Platina"},
		{"9999.99", "Platina"},
		{"10000", "Diamante"},
		{"50000", "Diamante"},
	}
	for _, tc := range cases {
		got := RankForTotal(decimal.RequireFromString(tc.total))
		if got != tc.want {
			t.Fatalf("total %s: expected %s, got %s", tc.total, tc.want, got)
		}
	}
}
