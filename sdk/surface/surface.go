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

// Package surface 定義核心對外的呈現介面。
//
// 核心只發出「宣告式」指令（畫這個盤面、標記這些格子、播這個音效），
// 不等待回應、不感知實作細節；渲染與音效的延遲或失敗不得影響遊戲邏輯。
package surface

import "github.com/zintix-labs/minireel/spec"

// Cue 音效事件名稱。
type Cue string

const (
	CueSpinStart Cue = "spin-start"
	CueSpinStop  Cue = "spin-stop"
	CueWin       Cue = "win"
	CueLose      Cue = "lose"
)

// RenderSurface 為渲染層介面。
//
// 所有方法皆為 fire-and-forget：實作方必須自行吸收阻塞與錯誤。
type RenderSurface interface {
	// RenderGrid 繪製目前可見盤面（轉動中每 tick 會被呼叫一次）。
	RenderGrid(grid spec.Grid)
	// HighlightCells 標記指定格子（連線覆蓋的座標，(row, col)）。
	// 重複呼叫以最後一次為準。
	HighlightCells(cells [][2]int)
	// ClearHighlight 清除所有連線標記。
	ClearHighlight()
	// Status 顯示狀態文字（籌碼、贏分提示等）。
	Status(text string)
}

// AudioSink 為音效層介面，觸發即返回。
type AudioSink interface {
	Play(cue Cue)
}

//---------------------------------------
// No-op 實作
//---------------------------------------

// NopSurface 不做任何事的 RenderSurface，供無頭模式與模擬器使用。
type NopSurface struct{}

func (NopSurface) RenderGrid(spec.Grid)    {}
func (NopSurface) HighlightCells([][2]int) {}
func (NopSurface) ClearHighlight()         {}
func (NopSurface) Status(string)           {}

// NopAudio 不做任何事的 AudioSink。
type NopAudio struct{}

func (NopAudio) Play(Cue) {}
