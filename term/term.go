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

// Package term 提供終端機版的 RenderSurface / AudioSink 實作。
//
// Screen 以 ANSI 游標控制做「原地重繪」：每次 tick 重畫同一塊區域，
// 讓輪軸動畫在終端機上看起來是連續轉動而不是洗版。
// 連線標記以 ANSI 反白呈現；glyph 寬度以 runewidth 對齊（emoji 佔兩欄）。
package term

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/minireel/sdk/surface"
	"github.com/zintix-labs/minireel/spec"
)

const (
	ansiUp     = "\033[%dA"
	ansiEraseL = "\033[2K"
	ansiHi     = "\033[7m" // 反白
	ansiReset  = "\033[0m"

	cellWidth = 4 // 每格內容寬度（glyph 置中）
)

// Screen 實作 surface.RenderSurface。
//
// 並發語意：所有方法都可能被不同平面呼叫（引擎 tick 與外部重標線），
// 以 mu 保護內部狀態；每次狀態變更後整塊重繪。
type Screen struct {
	w      io.Writer
	glyphs [spec.SymbolCount]string

	mu     sync.Mutex
	grid   spec.Grid
	hi     [spec.Rows][spec.Reels]bool
	status string
	drawn  int // 上一次繪製的行數；0 表示尚未繪製
}

// NewScreen 建立終端機渲染表面；glyph 來自遊戲設定（留空用預設）。
func NewScreen(w io.Writer, ss *spec.SymbolSetting) *Screen {
	s := &Screen{w: w}
	if ss != nil {
		s.glyphs = ss.GlyphOf
	}
	for i, g := range s.glyphs {
		if g == "" {
			s.glyphs[i] = spec.Symbol(i).String()
		}
	}
	return s
}

// RenderGrid 繪製目前可見盤面。
func (s *Screen) RenderGrid(grid spec.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = grid
	s.draw()
}

// HighlightCells 標記連線覆蓋的格子；重複呼叫以最後一次為準。
func (s *Screen) HighlightCells(cells [][2]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hi = [spec.Rows][spec.Reels]bool{}
	for _, cell := range cells {
		r, c := cell[0], cell[1]
		if r >= 0 && r < spec.Rows && c >= 0 && c < spec.Reels {
			s.hi[r][c] = true
		}
	}
	s.draw()
}

// ClearHighlight 清除所有連線標記。
func (s *Screen) ClearHighlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hi = [spec.Rows][spec.Reels]bool{}
	s.draw()
}

// Status 顯示狀態文字。
func (s *Screen) Status(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = text
	s.draw()
}

// draw 整塊重繪：先把游標移回上一次繪製的起點，再逐行覆寫。
// 呼叫端必須持有 mu。
func (s *Screen) draw() {
	var b strings.Builder
	if s.drawn > 0 {
		fmt.Fprintf(&b, ansiUp, s.drawn)
	}

	border := "+" + strings.Repeat("-", spec.Reels*(cellWidth+1)+1) + "+"
	b.WriteString(ansiEraseL + border + "\n")
	for r := 0; r < spec.Rows; r++ {
		b.WriteString(ansiEraseL + "| ")
		for c := 0; c < spec.Reels; c++ {
			cell := padCenter(s.glyphs[s.grid[r][c]], cellWidth)
			if s.hi[r][c] {
				cell = ansiHi + cell + ansiReset
			}
			b.WriteString(cell + " ")
		}
		b.WriteString("|\n")
	}
	b.WriteString(ansiEraseL + border + "\n")
	b.WriteString(ansiEraseL + s.status + "\n")

	// 渲染層吸收所有輸出錯誤（fire-and-forget 合約）
	_, _ = io.WriteString(s.w, b.String())
	s.drawn = spec.Rows + 3
}

// padCenter 以顯示寬度置中（emoji 佔兩欄）。
func padCenter(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w >= width {
		return str
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + str + strings.Repeat(" ", right)
}

//---------------------------------------
// AudioSink
//---------------------------------------

// Chime 實作 surface.AudioSink：終端機沒有音效裝置，
// 以 BEL 字元與文字標記代替（win 會同時響鈴）。
type Chime struct {
	w io.Writer
}

// NewChime 建立終端機音效槽。
func NewChime(w io.Writer) *Chime {
	return &Chime{w: w}
}

// Play 觸發即返回；錯誤一律吸收。
func (c *Chime) Play(cue surface.Cue) {
	switch cue {
	case surface.CueWin:
		_, _ = io.WriteString(c.w, "\a")
	default:
		// 其餘 cue 靜默：終端機上盤面與狀態列已足夠表達
	}
}
