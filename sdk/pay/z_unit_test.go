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

package pay

import (
	"testing"

	"github.com/zintix-labs/minireel/spec"
)

func payTable(t *testing.T) *spec.PaySetting {
	t.Helper()
	ps := &spec.PaySetting{Row: 30, Diagonal: 50, Jackpot: 100}
	if err := ps.Init(); err != nil {
		t.Fatalf("pay setting init failed: %v", err)
	}
	return ps
}

func Test_NoWin(t *testing.T) {
	grid := spec.Grid{
		{spec.Cherry, spec.Lemon, spec.Bar},
		{spec.Cherry, spec.Lemon, spec.Bar},
		{spec.Lemon, spec.Bar, spec.Cherry},
	}

	ev := Evaluate(grid, payTable(t))
	if ev.Won() || ev.Total != 0 {
		t.Fatalf("expected no win, got total=%d lines=%v", ev.Total, ev.Lines)
	}
}

func Test_SingleRow(t *testing.T) {
	grid := spec.Grid{
		{spec.Cherry, spec.Lemon, spec.Bar},
		{spec.Bar, spec.Bar, spec.Bar},
		{spec.Lemon, spec.Seven, spec.Cherry},
	}

	ev := Evaluate(grid, payTable(t))
	if ev.Total != 30 {
		t.Fatalf("total = %d, want 30", ev.Total)
	}
	if len(ev.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(ev.Lines))
	}
	pl := ev.Lines[0]
	if pl.Kind != KindRow || pl.Index != 1 || pl.Symbol != spec.Bar || pl.Jackpot {
		t.Fatalf("unexpected line: %+v", pl)
	}
}

func Test_Diagonals(t *testing.T) {
	// 左上到右下 cherry 連線
	grid := spec.Grid{
		{spec.Cherry, spec.Lemon, spec.Bar},
		{spec.Bar, spec.Cherry, spec.Lemon},
		{spec.Lemon, spec.Bar, spec.Cherry},
	}
	ev := Evaluate(grid, payTable(t))
	if ev.Total != 50 || len(ev.Lines) != 1 || ev.Lines[0].Kind != KindDiagDown {
		t.Fatalf("diag down: total=%d lines=%v", ev.Total, ev.Lines)
	}

	// 左下到右上 lemon 連線
	grid = spec.Grid{
		{spec.Cherry, spec.Bar, spec.Lemon},
		{spec.Bar, spec.Lemon, spec.Cherry},
		{spec.Lemon, spec.Cherry, spec.Bar},
	}
	ev = Evaluate(grid, payTable(t))
	if ev.Total != 50 || len(ev.Lines) != 1 || ev.Lines[0].Kind != KindDiagUp {
		t.Fatalf("diag up: total=%d lines=%v", ev.Total, ev.Lines)
	}
}

func Test_JackpotReplacesLineAmount(t *testing.T) {
	grid := spec.Grid{
		{spec.Seven, spec.Seven, spec.Seven},
		{spec.Cherry, spec.Lemon, spec.Bar},
		{spec.Lemon, spec.Bar, spec.Cherry},
	}

	ev := Evaluate(grid, payTable(t))
	if ev.Total != 100 {
		t.Fatalf("total = %d, want 100 (jackpot replaces row, not adds)", ev.Total)
	}
	if !ev.Lines[0].Jackpot {
		t.Fatalf("line not flagged jackpot: %+v", ev.Lines[0])
	}
}

func Test_MultipleLinesPayIndependently(t *testing.T) {
	// 第一列 seven(jackpot 100) + 第二列 bar(30)
	grid := spec.Grid{
		{spec.Seven, spec.Seven, spec.Seven},
		{spec.Bar, spec.Bar, spec.Bar},
		{spec.Bar, spec.Lemon, spec.Cherry},
	}

	ev := Evaluate(grid, payTable(t))
	if ev.Total != 130 {
		t.Fatalf("total = %d, want 130", ev.Total)
	}
	if len(ev.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(ev.Lines))
	}
}

func Test_AllSevens(t *testing.T) {
	grid := spec.Grid{
		{spec.Seven, spec.Seven, spec.Seven},
		{spec.Seven, spec.Seven, spec.Seven},
		{spec.Seven, spec.Seven, spec.Seven},
	}

	// 三列 + 兩對角線全為 jackpot：5 * 100
	ev := Evaluate(grid, payTable(t))
	if ev.Total != 500 {
		t.Fatalf("total = %d, want 500", ev.Total)
	}
	if len(ev.Lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(ev.Lines))
	}
}

func Test_DiagonalJackpot(t *testing.T) {
	grid := spec.Grid{
		{spec.Seven, spec.Lemon, spec.Bar},
		{spec.Bar, spec.Seven, spec.Lemon},
		{spec.Lemon, spec.Bar, spec.Seven},
	}

	ev := Evaluate(grid, payTable(t))
	if ev.Total != 100 {
		t.Fatalf("total = %d, want 100 (jackpot replaces diagonal)", ev.Total)
	}
}

func Test_LineCells(t *testing.T) {
	row := PayLine{Kind: KindRow, Index: 2}
	cells := row.Cells()
	for c := 0; c < spec.Reels; c++ {
		if cells[c] != [2]int{2, c} {
			t.Fatalf("row cells[%d] = %v", c, cells[c])
		}
	}

	down := PayLine{Kind: KindDiagDown}
	if cells := down.Cells(); cells != [spec.Reels][2]int{{0, 0}, {1, 1}, {2, 2}} {
		t.Fatalf("diag down cells = %v", cells)
	}

	up := PayLine{Kind: KindDiagUp}
	if cells := up.Cells(); cells != [spec.Reels][2]int{{2, 0}, {1, 1}, {0, 2}} {
		t.Fatalf("diag up cells = %v", cells)
	}
}
