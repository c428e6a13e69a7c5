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

package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/zintix-labs/minireel/recorder"
	"github.com/zintix-labs/minireel/sdk/pay"
	"github.com/zintix-labs/minireel/spec"
)

// recordSome 餵入固定的贏/輸樣本：win 次每次贏 30、lose 次沒中。
func recordSome(win, lose int) *recorder.SpinRecorder {
	sr := recorder.New()
	winGrid := spec.Grid{
		{spec.Bar, spec.Bar, spec.Bar},
		{spec.Cherry, spec.Lemon, spec.Seven},
		{spec.Lemon, spec.Seven, spec.Cherry},
	}
	loseGrid := spec.Grid{
		{spec.Cherry, spec.Lemon, spec.Bar},
		{spec.Cherry, spec.Lemon, spec.Bar},
		{spec.Lemon, spec.Bar, spec.Cherry},
	}
	ps := &spec.PaySetting{Row: 30, Diagonal: 50, Jackpot: 100}
	_ = ps.Init()
	for i := 0; i < win; i++ {
		ev := pay.Evaluate(winGrid, ps)
		sr.Record(winGrid, &ev, 10)
	}
	for i := 0; i < lose; i++ {
		ev := pay.Evaluate(loseGrid, ps)
		sr.Record(loseGrid, &ev, 10)
	}
	return sr
}

func Test_SummaryNumbers(t *testing.T) {
	sr := recordSome(25, 75)
	rep := FromRecorder(sr, "unit", 10)

	if rep.Summary.Spins != 100 || rep.Summary.TotalBet != 1000 {
		t.Fatalf("spins/bet: %+v", rep.Summary)
	}
	if rep.Summary.TotalWin != 25*30 {
		t.Fatalf("total win = %d", rep.Summary.TotalWin)
	}
	if got := rep.Summary.RTP; math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("rtp = %v, want 0.75", got)
	}
	if got := rep.Summary.HitRate; math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("hit rate = %v, want 0.25", got)
	}
	ci := rep.Summary.HitRateCI
	if !(ci.Lo < 0.25 && 0.25 < ci.Hi) {
		t.Fatalf("hit rate CI does not cover estimate: %+v", ci)
	}
}

func Test_LineAndDist(t *testing.T) {
	sr := recordSome(10, 90)
	rep := FromRecorder(sr, "unit", 10)

	if len(rep.Lines.Names) != recorder.LineSlots {
		t.Fatalf("line slots = %d", len(rep.Lines.Names))
	}
	// 樣本只命中第 0 列
	if rep.Lines.Hits[0] != 10 {
		t.Fatalf("row_0 hits = %d, want 10", rep.Lines.Hits[0])
	}
	for i := 1; i < recorder.LineSlots; i++ {
		if rep.Lines.Hits[i] != 0 {
			t.Fatalf("slot %d hits = %d, want 0", i, rep.Lines.Hits[i])
		}
	}

	if len(rep.Dist.Wins) != 1 || rep.Dist.Wins[0] != 30 || rep.Dist.Counts[0] != 10 {
		t.Fatalf("dist: %+v", rep.Dist)
	}
}

func Test_UniformityDetectsBias(t *testing.T) {
	// 全部樣本同一個盤面：每格分布極度偏斜，p 應趨近 0
	sr := recordSome(0, 10000)
	rep := FromRecorder(sr, "unit", 10)
	if rep.Uniformity.MinP > 1e-6 {
		t.Fatalf("biased cells not detected: min p = %v", rep.Uniformity.MinP)
	}
}

func Test_UniformityPassesUniform(t *testing.T) {
	// 手工造出完全均勻的逐格計數
	sr := recorder.New()
	sr.Spins = 8000
	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Reels; c++ {
			for s := 0; s < spec.SymbolCount; s++ {
				sr.CellCounts[r][c][s] = 2000
			}
		}
	}
	rep := uniformityOf(sr)
	if rep.MinP < 0.99 {
		t.Fatalf("perfectly uniform counts got min p = %v", rep.MinP)
	}
}

func Test_RenderJSON(t *testing.T) {
	rep := FromRecorder(recordSome(5, 5), "unit", 10)

	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, &JsonStatReportRender{}); err != nil {
		t.Fatalf("json render failed: %v", err)
	}
	var round StatReport
	if err := json.Unmarshal(buf.Bytes(), &round); err != nil {
		t.Fatalf("render emitted invalid json: %v", err)
	}
	if round.Summary.Spins != 10 {
		t.Fatalf("round trip spins = %d", round.Summary.Spins)
	}
}

func Test_RenderYAML(t *testing.T) {
	rep := FromRecorder(recordSome(5, 5), "unit", 10)

	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, &YAMLStatReportRender{}); err != nil {
		t.Fatalf("yaml render failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("yaml render wrote nothing")
	}
}
