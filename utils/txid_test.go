package utils

import "testing"

func TestGeneratePixTxID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		txid := GeneratePixTxID()
		// Efí requires 26-35 alphanumeric chars.
		if len(txid) < 26 || len(txid) > 35 {
			t.Fatalf("txid %q has invalid length %d", txid, len(txid))
		}
		for _, ch := range txid {
			if !(ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z') {
				t.Fatalf("txid %q contains non-alphanumeric %q", txid, ch)
			}
		}
		if seen[txid] {
			t.Fatalf("duplicate txid %q", txid)
		}
		seen[txid] = true
	}
}
