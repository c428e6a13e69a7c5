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
	"fmt"

	"github.com/zintix-labs/minireel/recorder"
	"github.com/zintix-labs/minireel/spec"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat/distuv"
)

// UniformityReport 逐格符號分布的卡方檢定。
//
// 盤面合約要求停輪後每格符號為獨立均勻分布（每符號 1/4）。
// 對九個格位各做一次 goodness-of-fit 卡方檢定（df = 符號數 - 1），
// 回報每格的卡方值與 p-value；p-value 偏低代表該格分布偏離均勻。
type UniformityReport struct {
	Spins int64                          `json:"Spins"`
	Chi2  [spec.Rows][spec.Reels]float64 `json:"Chi2"`
	P     [spec.Rows][spec.Reels]float64 `json:"P"`
	MinP  float64                        `json:"MinP"`
}

// uniformityOf 由逐格計數計算卡方與 p-value。
func uniformityOf(sr *recorder.SpinRecorder) *UniformityReport {
	rep := &UniformityReport{Spins: sr.Spins, MinP: 1}
	if sr.Spins == 0 {
		return rep
	}

	chi := distuv.ChiSquared{K: spec.SymbolCount - 1}
	expect := float64(sr.Spins) / spec.SymbolCount

	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Reels; c++ {
			var chi2 float64
			for s := 0; s < spec.SymbolCount; s++ {
				d := float64(sr.CellCounts[r][c][s]) - expect
				chi2 += d * d / expect
			}
			p := 1 - chi.CDF(chi2)
			rep.Chi2[r][c] = chi2
			rep.P[r][c] = p
			if p < rep.MinP {
				rep.MinP = p
			}
		}
	}
	return rep
}

// fmtSummary 輸出均勻性檢定的終端摘要。
func (u *UniformityReport) fmtSummary() string {
	p := message.NewPrinter(lang)
	out := p.Sprintf("cell uniformity (chi-square, df=%d):\n", spec.SymbolCount-1)
	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Reels; c++ {
			out += fmt.Sprintf("  cell(%d,%d) chi2=%7.3f p=%.4f\n", r, c, u.Chi2[r][c], u.P[r][c])
		}
	}
	out += p.Sprintf("  min p = %.4f (over %d cells)", u.MinP, spec.Rows*spec.Reels)
	return out
}
