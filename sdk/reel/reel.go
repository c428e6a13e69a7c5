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

// Package reel 實作 3x3 轉輪引擎。
//
// 引擎為 tick 驅動：呼叫端（Session 或互動介面）以固定節奏呼叫
// Tick()，引擎在每個 tick 推進所有仍在轉動的轉輪。不自帶 goroutine
// 與計時器，所有狀態變更都發生在呼叫者的單一執行緒上。
package reel

import (
	"github.com/zintix-labs/minireel/sdk/core"
	"github.com/zintix-labs/minireel/spec"
)

// reel 為單一轉輪的轉動狀態。
//
// window 為該輪目前可見的三格，window[0] 在畫面最上方。
// 轉動時每 tick 視窗向下位移一格：最下方符號滾出，最上方
// 進入一個新的均勻抽樣符號。
type reel struct {
	window [spec.Rows]spec.Symbol
	travel int
	target int
	moving bool
}

// fill 以均勻抽樣填滿整個視窗（引擎建立時的初始盤面）。
func (r *reel) fill(rng *core.Core) {
	for i := range r.window {
		r.window[i] = draw(rng)
	}
}

// start 重設行程計數並開始轉動，target 為本次需要走的步數。
func (r *reel) start(target int) {
	r.travel = 0
	r.target = target
	r.moving = true
}

// step 推進一格。行程到達目標時當下凍結，之後的 tick 不再影響此輪。
func (r *reel) step(rng *core.Core) {
	if !r.moving {
		return
	}

	// 1. 視窗下移：舊符號滾出，新符號從上緣進入
	r.window[2] = r.window[1]
	r.window[1] = r.window[0]
	r.window[0] = draw(rng)

	// 2. 行程推進，到達即凍結
	r.travel++
	if r.travel >= r.target {
		r.moving = false
	}
}

// draw 均勻抽出一個符號，四種符號機率各 1/4。
func draw(rng *core.Core) spec.Symbol {
	return spec.Symbol(rng.IntN(spec.SymbolCount))
}
