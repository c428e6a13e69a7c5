// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recorder

import (
	"testing"

	"github.com/zintix-labs/minireel/sdk/pay"
	"github.com/zintix-labs/minireel/spec"
)

func Test_RecordCounts(t *testing.T) {
	sr := New()
	ps := &spec.PaySetting{Row: 30, Diagonal: 50, Jackpot: 100}
	if err := ps.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	grid := spec.Grid{
		{spec.Seven, spec.Seven, spec.Seven},
		{spec.Bar, spec.Bar, spec.Bar},
		{spec.Bar, spec.Lemon, spec.Cherry},
	}
	ev := pay.Evaluate(grid, ps)
	sr.Record(grid, &ev, 10)

	if sr.Spins != 1 || sr.TotalBet != 10 || sr.TotalWin != 130 {
		t.Fatalf("counts: %+v", sr)
	}
	if sr.Hits != 1 || sr.Jackpots != 1 {
		t.Fatalf("hits=%d jackpots=%d", sr.Hits, sr.Jackpots)
	}
	if sr.LineHits[0] != 1 || sr.LineHits[1] != 1 || sr.LineHits[2] != 0 {
		t.Fatalf("line hits: %v", sr.LineHits)
	}
	if sr.WinBuckets[130] != 1 {
		t.Fatalf("win bucket: %v", sr.WinBuckets)
	}
	if sr.CellCounts[0][0][spec.Seven] != 1 || sr.CellCounts[2][0][spec.Bar] != 1 {
		t.Fatalf("cell counts wrong")
	}
}

func Test_Merge(t *testing.T) {
	ps := &spec.PaySetting{Row: 30, Diagonal: 50, Jackpot: 100}
	_ = ps.Init()
	grid := spec.Grid{
		{spec.Cherry, spec.Cherry, spec.Cherry},
		{spec.Lemon, spec.Bar, spec.Seven},
		{spec.Bar, spec.Seven, spec.Lemon},
	}

	a, b := New(), New()
	ev := pay.Evaluate(grid, ps)
	a.Record(grid, &ev, 10)
	b.Record(grid, &ev, 10)
	b.Record(grid, &ev, 10)

	a.Merge(b)
	if a.Spins != 3 || a.TotalWin != 90 || a.Hits != 3 {
		t.Fatalf("merged: %+v", a)
	}
	if a.WinBuckets[30] != 3 {
		t.Fatalf("merged buckets: %v", a.WinBuckets)
	}
	if a.CellCounts[0][0][spec.Cherry] != 3 {
		t.Fatalf("merged cells wrong")
	}
}

func Test_SlotName(t *testing.T) {
	names := []string{"row_0", "row_1", "row_2", "diag_down", "diag_up"}
	for i, want := range names {
		if got := SlotName(i); got != want {
			t.Fatalf("slot %d = %q, want %q", i, got, want)
		}
	}
}
