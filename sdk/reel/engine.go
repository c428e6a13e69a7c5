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

package reel

import (
	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/sdk/core"
	"github.com/zintix-labs/minireel/sdk/pay"
	"github.com/zintix-labs/minireel/sdk/surface"
	"github.com/zintix-labs/minireel/spec"
)

// Engine 為三輪引擎，持有所有轉輪狀態與對渲染層的輸出。
//
// 非執行緒安全：Spin/Tick/Grid 必須由同一個呼叫者循序呼叫，
// 這是單一寫入者紀律——盤面只有 tick 路徑會改寫。
type Engine struct {
	rng      *core.Core
	rs       *spec.ReelSetting
	surf     surface.RenderSurface
	reels    [spec.Reels]reel
	spinning bool
	done     chan struct{}
}

// NewEngine 建立引擎並以均勻抽樣填出初始盤面。
//
// surf 可為 surface.NopSurface{}；引擎對渲染層只做宣告式輸出。
func NewEngine(rng *core.Core, rs *spec.ReelSetting, surf surface.RenderSurface) (*Engine, error) {
	if err := rs.Init(); err != nil {
		return nil, err
	}

	e := &Engine{rng: rng, rs: rs, surf: surf}
	for i := range e.reels {
		e.reels[i].fill(rng)
	}
	e.surf.RenderGrid(e.visible())
	return e, nil
}

// Spin 開始一次轉動，回傳本次的完成訊號。
//
// 完成訊號為 one-shot：最後一輪凍結的那個 tick 關閉 channel，
// 之後永遠處於已關閉狀態；每次 Spin 產生新的 channel。
// 引擎轉動中重複呼叫屬於合約違反（上層 Session 的 spin-lock
// 應該先擋下），回傳 Fatal。
func (e *Engine) Spin() (<-chan struct{}, error) {
	if e.spinning {
		return nil, errs.NewCode(errs.CodeSpinInProgress, errs.Fatal, "reel.Engine : spin while spinning")
	}

	// 舊的連線標記在新轉動開始時即失效
	e.surf.ClearHighlight()

	for i := range e.reels {
		e.reels[i].start(e.rs.TargetOf(i))
	}
	e.spinning = true
	e.done = make(chan struct{})
	return e.done, nil
}

// Tick 推進一個動畫步進，回傳引擎是否仍在轉動。
//
// 最後一輪凍結的同一個 tick 內完成：渲染最終盤面、關閉完成訊號。
func (e *Engine) Tick() bool {
	if !e.spinning {
		return false
	}

	// 1. 推進所有仍在轉動的轉輪
	for i := range e.reels {
		e.reels[i].step(e.rng)
	}
	e.surf.RenderGrid(e.visible())

	// 2. 全部凍結才算結算；stagger 保證由左至右依序停輪
	for i := range e.reels {
		if e.reels[i].moving {
			return true
		}
	}

	e.spinning = false
	close(e.done)
	return false
}

// Settled 回傳引擎是否處於結算狀態（所有轉輪凍結）。
func (e *Engine) Settled() bool {
	return !e.spinning
}

// Grid 回傳結算後的邏輯盤面。
//
// 任何轉輪仍在轉動時讀取屬於合約違反，回傳 NotSettled（Fatal）；
// 結算判定只看轉輪邏輯狀態，與動畫或渲染進度無關。
func (e *Engine) Grid() (spec.Grid, error) {
	if e.spinning {
		return spec.Grid{}, errs.NewCode(errs.CodeNotSettled, errs.Fatal, "reel.Engine : grid read before settle")
	}
	return e.visible(), nil
}

// HighlightPaylines 要求渲染層標記命中的連線。
//
// 冪等：同一組連線重複呼叫結果相同；空列表等同清除所有標記。
func (e *Engine) HighlightPaylines(lines []pay.PayLine) {
	if len(lines) == 0 {
		e.surf.ClearHighlight()
		return
	}

	cells := make([][2]int, 0, len(lines)*spec.Reels)
	for _, pl := range lines {
		lc := pl.Cells()
		cells = append(cells, lc[:]...)
	}
	e.surf.HighlightCells(cells)
}

// visible 組出目前可見盤面（row-major）。
func (e *Engine) visible() spec.Grid {
	var g spec.Grid
	for c := range e.reels {
		for r := 0; r < spec.Rows; r++ {
			g[r][c] = e.reels[c].window[r]
		}
	}
	return g
}
