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
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/minireel/recorder"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat/distuv"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// StatReport 遊戲統計報告
type StatReport struct {
	Summary    *SummaryReport    `json:"Summary"`
	Lines      *LineReport       `json:"Lines"`
	Dist       *DistReport       `json:"Dist"`
	Uniformity *UniformityReport `json:"Uniformity"`
}

type SummaryReport struct {
	GameName  string  `json:"GameName"`
	Spins     int64   `json:"Spins"`
	Bet       int     `json:"Bet"`
	TotalBet  int64   `json:"TotalBet"`
	TotalWin  int64   `json:"TotalWin"`
	RTP       float64 `json:"RTP"`
	Hits      int64   `json:"Hits"`
	HitRate   float64 `json:"HitRate"`
	HitRateCI CI      `json:"HitRateCI"`
	Jackpots  int64   `json:"Jackpots"`
}

// LineReport 各連線槽位的命中統計（三橫列 + 兩對角線）
type LineReport struct {
	Names []string  `json:"Names"`
	Hits  []int64   `json:"Hits"`
	Rates []float64 `json:"Rates"`
}

// DistReport 單次總贏分的落點統計
//
// 贏分集合是離散且有限的（連線金額的組合），直接按金額列出。
type DistReport struct {
	Wins   []int     `json:"Wins"`
	Counts []int64   `json:"Counts"`
	Probs  []float64 `json:"Probs"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// FromRecorder 把原始計數整理成完整報告。
func FromRecorder(sr *recorder.SpinRecorder, gameName string, bet int) *StatReport {
	sum := &SummaryReport{
		GameName: gameName,
		Spins:    sr.Spins,
		Bet:      bet,
		TotalBet: sr.TotalBet,
		TotalWin: sr.TotalWin,
		Hits:     sr.Hits,
		Jackpots: sr.Jackpots,
	}
	if sr.TotalBet > 0 {
		sum.RTP = float64(sr.TotalWin) / float64(sr.TotalBet)
	}
	if sr.Spins > 0 {
		sum.HitRate = float64(sr.Hits) / float64(sr.Spins)
		sum.HitRateCI = binomCI(sr.Hits, sr.Spins, 0.05)
	}

	lines := &LineReport{}
	for slot, hits := range sr.LineHits {
		lines.Names = append(lines.Names, recorder.SlotName(slot))
		lines.Hits = append(lines.Hits, hits)
		rate := 0.0
		if sr.Spins > 0 {
			rate = float64(hits) / float64(sr.Spins)
		}
		lines.Rates = append(lines.Rates, rate)
	}

	dist := &DistReport{}
	wins := make([]int, 0, len(sr.WinBuckets))
	for w := range sr.WinBuckets {
		wins = append(wins, w)
	}
	sort.Ints(wins)
	for _, w := range wins {
		dist.Wins = append(dist.Wins, w)
		dist.Counts = append(dist.Counts, sr.WinBuckets[w])
		dist.Probs = append(dist.Probs, float64(sr.WinBuckets[w])/float64(sr.Spins))
	}

	return &StatReport{
		Summary:    sum,
		Lines:      lines,
		Dist:       dist,
		Uniformity: uniformityOf(sr),
	}
}

func (s *StatReport) WriteWith(w io.Writer, rep StatReportRender) error {
	return rep.Write(w, s)
}

func (s *StatReport) StdOut(ut time.Duration) {
	formatDuration(ut, s.Summary.Spins)
	sk, sm := s.fmtBasic()
	str := fmtTable(s.Summary.GameName, sk, sm)
	fmt.Println(str)
	fmt.Println(s.Uniformity.fmtSummary())
}

// ============================================================
// ** 內部方法 **
// ============================================================

// binomCI 以 Clopper-Pearson（Beta PPF 映射）估計二項比例的信賴區間。
func binomCI(k, n int64, alpha float64) CI {
	var ci CI
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return ci
}

func formatDuration(d time.Duration, spins int64) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(spins) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\nsps : %d spins/sec\n", sec, sps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		s = s % 60
		p.Printf("used: %dm %ds\nsps : %d spins/sec\n", m, s, sps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\nsps : %d spins/sec\n", h, m, s, sps)
}

// StdOut

func (s *StatReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Game Name":    p.Sprintf("%s", s.Summary.GameName),
		"Total Spins":  p.Sprintf("%d", s.Summary.Spins),
		"Bet":          p.Sprintf("%d", s.Summary.Bet),
		"Total Bet":    p.Sprintf("%d", s.Summary.TotalBet),
		"Total Win":    p.Sprintf("%d", s.Summary.TotalWin),
		"Total RTP":    p.Sprintf("%.2f %%", 100.0*s.Summary.RTP),
		"Hit Rate":     p.Sprintf("%.2f %%", 100.0*s.Summary.HitRate),
		"HitRate CI":   p.Sprintf("[%.2f%%,%.2f%%]", 100.0*s.Summary.HitRateCI.Lo, 100.0*s.Summary.HitRateCI.Hi),
		"Jackpot Hits": p.Sprintf("%d", s.Summary.Jackpots),
	}
	keys := []string{"Game Name", "Total Spins", "Bet", "Total Bet", "Total Win", "Total RTP", "Hit Rate", "HitRate CI", "Jackpot Hits"}
	for i, name := range s.Lines.Names {
		k := "Line " + name
		basic[k] = p.Sprintf("%d (%.3f %%)", s.Lines.Hits[i], 100.0*s.Lines.Rates[i])
		keys = append(keys, k)
	}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
