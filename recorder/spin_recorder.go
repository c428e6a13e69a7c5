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

// Package recorder 累計模擬過程的逐轉統計。
//
// Recorder 本身不做任何統計推論，只負責計數；報表與檢定由 stats 包處理。
// 非執行緒安全：多工模擬時每個 worker 持有自己的 Recorder，結束後 Merge。
package recorder

import (
	"fmt"

	"github.com/zintix-labs/minireel/sdk/pay"
	"github.com/zintix-labs/minireel/spec"
)

// LineSlots 固定連線槽位數：三橫列 + 兩對角線。
const LineSlots = spec.Rows + 2

// SpinRecorder 累計 N 次轉動的原始計數。
type SpinRecorder struct {
	Spins    int64
	TotalBet int64
	TotalWin int64
	Hits     int64 // 至少命中一條線的轉動次數
	Jackpots int64 // jackpot 線命中總數

	// LineHits 依槽位計的連線命中數：0~2 橫列、3 左上右下、4 左下右上
	LineHits [LineSlots]int64

	// CellCounts[row][col][symbol] 結算盤面的逐格符號計數，供均勻性檢定
	CellCounts [spec.Rows][spec.Reels][spec.SymbolCount]int64

	// WinBuckets 單次總贏分出現次數（0 不計入）
	WinBuckets map[int]int64
}

func New() *SpinRecorder {
	return &SpinRecorder{WinBuckets: make(map[int]int64)}
}

// Record 記錄一次已結算轉動的盤面與賠付結果。
func (sr *SpinRecorder) Record(grid spec.Grid, ev *pay.Evaluation, bet int) {
	sr.Spins++
	sr.TotalBet += int64(bet)
	sr.TotalWin += int64(ev.Total)

	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Reels; c++ {
			sr.CellCounts[r][c][grid[r][c]]++
		}
	}

	if !ev.Won() {
		return
	}
	sr.Hits++
	sr.WinBuckets[ev.Total]++
	for _, pl := range ev.Lines {
		sr.LineHits[lineSlot(pl)]++
		if pl.Jackpot {
			sr.Jackpots++
		}
	}
}

// Merge 併入另一個 Recorder 的計數（多工模擬收攏用）。
func (sr *SpinRecorder) Merge(other *SpinRecorder) {
	sr.Spins += other.Spins
	sr.TotalBet += other.TotalBet
	sr.TotalWin += other.TotalWin
	sr.Hits += other.Hits
	sr.Jackpots += other.Jackpots
	for i := range sr.LineHits {
		sr.LineHits[i] += other.LineHits[i]
	}
	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Reels; c++ {
			for s := 0; s < spec.SymbolCount; s++ {
				sr.CellCounts[r][c][s] += other.CellCounts[r][c][s]
			}
		}
	}
	for win, n := range other.WinBuckets {
		sr.WinBuckets[win] += n
	}
}

// lineSlot 把連線映射到固定槽位。
func lineSlot(pl pay.PayLine) int {
	switch pl.Kind {
	case pay.KindDiagDown:
		return spec.Rows
	case pay.KindDiagUp:
		return spec.Rows + 1
	default:
		return pl.Index
	}
}

// SlotName 回傳槽位的報表名稱。
func SlotName(slot int) string {
	switch slot {
	case spec.Rows:
		return "diag_down"
	case spec.Rows + 1:
		return "diag_up"
	default:
		return fmt.Sprintf("row_%d", slot)
	}
}
