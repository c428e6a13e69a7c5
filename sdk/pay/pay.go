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

// Package pay 實作盤面結算：對 3x3 盤面檢查三橫列與兩對角線，
// 回傳所有命中的連線與總贏分。純函式、無狀態，可獨立測試。
package pay

import (
	"fmt"

	"github.com/zintix-labs/minireel/spec"
)

// LineKind 標示連線種類。
type LineKind uint8

const (
	// KindRow 橫列連線；Index 為列號(0~2)。
	KindRow LineKind = iota
	// KindDiagDown 左上到右下的對角線。
	KindDiagDown
	// KindDiagUp 左下到右上的對角線。
	KindDiagUp
)

var kindNames = [...]string{"row", "diag_down", "diag_up"}

// String fmt
func (k LineKind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// PayLine 描述一條命中的連線。
type PayLine struct {
	Kind    LineKind    `json:"kind"`
	Index   int         `json:"index"` // 橫列的列號；對角線固定為 0
	Symbol  spec.Symbol `json:"symbol"`
	Amount  int         `json:"amount"`
	Jackpot bool        `json:"jackpot"`
}

// Cells 回傳連線覆蓋的格子座標，依轉輪順序由左至右，每格為 (row, col)。
// 提供給渲染層做連線標記。
func (pl PayLine) Cells() [spec.Reels][2]int {
	var cells [spec.Reels][2]int
	for c := 0; c < spec.Reels; c++ {
		switch pl.Kind {
		case KindDiagDown:
			cells[c] = [2]int{c, c}
		case KindDiagUp:
			cells[c] = [2]int{spec.Rows - 1 - c, c}
		default:
			cells[c] = [2]int{pl.Index, c}
		}
	}
	return cells
}

// String fmt
func (pl PayLine) String() string {
	if pl.Kind == KindRow {
		return fmt.Sprintf("%s[%d] %s +%d", pl.Kind, pl.Index, pl.Symbol, pl.Amount)
	}
	return fmt.Sprintf("%s %s +%d", pl.Kind, pl.Symbol, pl.Amount)
}

// Evaluation 為一次盤面結算的完整結果。
type Evaluation struct {
	Lines []PayLine `json:"lines,omitempty"`
	Total int       `json:"total"`
}

// Won 回傳本次結算是否有任何連線命中。
func (ev *Evaluation) Won() bool {
	return len(ev.Lines) > 0
}

// Evaluate 對結算後的盤面執行賠付判定。
//
// 規則：
//  1. 檢查三條橫列與兩條對角線，共五條線。
//  2. 每條線獨立判定、獨立賠付，互不排斥。
//  3. 連線圖標為 seven 時，以 Jackpot 金額「取代」該線原本的
//     Row/Diagonal 金額，不疊加。
func Evaluate(grid spec.Grid, ps *spec.PaySetting) Evaluation {
	ev := Evaluation{}

	// 1. 三條橫列
	for r := 0; r < spec.Rows; r++ {
		if sym, ok := lineOf(grid[r][0], grid[r][1], grid[r][2]); ok {
			ev.add(payLine(KindRow, r, sym, ps.Row, ps))
		}
	}

	// 2. 左上到右下
	if sym, ok := lineOf(grid[0][0], grid[1][1], grid[2][2]); ok {
		ev.add(payLine(KindDiagDown, 0, sym, ps.Diagonal, ps))
	}

	// 3. 左下到右上
	if sym, ok := lineOf(grid[2][0], grid[1][1], grid[0][2]); ok {
		ev.add(payLine(KindDiagUp, 0, sym, ps.Diagonal, ps))
	}

	return ev
}

// lineOf 判定三格是否同符號連線。
func lineOf(a, b, c spec.Symbol) (spec.Symbol, bool) {
	if a == b && b == c {
		return a, true
	}
	return 0, false
}

// payLine 組出單條連線的賠付，seven 連線升級為 jackpot。
func payLine(kind LineKind, idx int, sym spec.Symbol, base int, ps *spec.PaySetting) PayLine {
	pl := PayLine{Kind: kind, Index: idx, Symbol: sym, Amount: base}
	if sym == spec.Seven {
		pl.Amount = ps.Jackpot
		pl.Jackpot = true
	}
	return pl
}

// add
func (ev *Evaluation) add(pl PayLine) {
	ev.Lines = append(ev.Lines, pl)
	ev.Total += pl.Amount
}
