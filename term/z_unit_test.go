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

package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/minireel/sdk/surface"
	"github.com/zintix-labs/minireel/spec"
)

func Test_RenderGridShowsGlyphs(t *testing.T) {
	var buf bytes.Buffer
	ss := &spec.SymbolSetting{}
	if err := ss.Init(); err != nil {
		t.Fatalf("symbol setting init: %v", err)
	}
	s := NewScreen(&buf, ss)

	grid := spec.Grid{
		{spec.Seven, spec.Seven, spec.Seven},
		{spec.Bar, spec.Bar, spec.Bar},
		{spec.Cherry, spec.Lemon, spec.Cherry},
	}
	s.RenderGrid(grid)

	out := buf.String()
	for _, glyph := range []string{"7", "▅", "🍒", "🍋"} {
		if !strings.Contains(out, glyph) {
			t.Fatalf("rendered output missing glyph %q:\n%s", glyph, out)
		}
	}
}

func Test_HighlightAndClear(t *testing.T) {
	var buf bytes.Buffer
	s := NewScreen(&buf, nil)
	s.RenderGrid(spec.Grid{})

	buf.Reset()
	s.HighlightCells([][2]int{{0, 0}, {0, 1}, {0, 2}})
	if !strings.Contains(buf.String(), ansiHi) {
		t.Fatalf("highlight did not emit inverse video marker")
	}

	buf.Reset()
	s.ClearHighlight()
	if strings.Contains(buf.String(), ansiHi) {
		t.Fatalf("clear left highlight markers behind")
	}
}

func Test_RedrawMovesCursorUp(t *testing.T) {
	var buf bytes.Buffer
	s := NewScreen(&buf, nil)
	s.RenderGrid(spec.Grid{})

	buf.Reset()
	s.RenderGrid(spec.Grid{})
	if !strings.Contains(buf.String(), "\033[6A") {
		t.Fatalf("second draw should move cursor up 6 lines:\n%q", buf.String())
	}
}

func Test_PadCenterWidth(t *testing.T) {
	for _, str := range []string{"7", "▅", "🍒", "bar"} {
		got := padCenter(str, cellWidth)
		if w := runewidth.StringWidth(got); w != cellWidth {
			t.Fatalf("padCenter(%q) width = %d, want %d", str, w, cellWidth)
		}
	}
}

func Test_ChimeOnlyWinRings(t *testing.T) {
	var buf bytes.Buffer
	c := NewChime(&buf)

	c.Play(surface.CueSpinStart)
	c.Play(surface.CueSpinStop)
	c.Play(surface.CueLose)
	if buf.Len() != 0 {
		t.Fatalf("non-win cues wrote output: %q", buf.String())
	}
	c.Play(surface.CueWin)
	if buf.String() != "\a" {
		t.Fatalf("win cue = %q, want BEL", buf.String())
	}
}
