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

package minireel

import (
	"context"
	"math"
	"testing"

	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/sdk/core"
	"github.com/zintix-labs/minireel/sdk/surface"
	"github.com/zintix-labs/minireel/spec"
)

// ---------------------------------------
// 腳本化 PRNG：讓盤面完全可控
// ---------------------------------------

// scriptPRNG 依腳本回傳 IntN 結果；耗盡後回傳 0。
type scriptPRNG struct {
	vals []int
	i    int
}

func (p *scriptPRNG) IntN(max int) int {
	if p.i >= len(p.vals) {
		return 0
	}
	v := p.vals[p.i]
	p.i++
	return v % max
}

func (p *scriptPRNG) Uint64() uint64            { return uint64(p.IntN(1 << 30)) }
func (p *scriptPRNG) UintN(max uint) uint       { return uint(p.IntN(int(max))) }
func (p *scriptPRNG) Float64() float64          { return 0 }
func (p *scriptPRNG) Snapshot() ([]byte, error) { return nil, nil }
func (p *scriptPRNG) Restore([]byte) error      { return nil }

type scriptFactory struct {
	vals []int
}

func (f *scriptFactory) New(seed int64) core.PRNG {
	return &scriptPRNG{vals: f.vals}
}

// scriptDraws 產生「建立引擎 + 連續多局」會消耗的抽樣腳本，
// 使每局的結算盤面都等於 grid。
//
// 抽樣順序與引擎一致：
//   - 建立時每輪由上而下填三格（共九次）。
//   - 轉動時每 tick 依輪序抽樣；第 c 輪最後三抽即其最終視窗
//     （最後一抽在最上列）。
func scriptDraws(rs *spec.ReelSetting, grid spec.Grid, spins int) []int {
	vals := make([]int, 0, 128)
	for i := 0; i < spec.Rows*spec.Reels; i++ {
		vals = append(vals, 0)
	}
	last := rs.TargetOf(spec.Reels - 1)
	for n := 0; n < spins; n++ {
		for t := 1; t <= last; t++ {
			for c := 0; c < spec.Reels; c++ {
				target := rs.TargetOf(c)
				if t > target {
					continue
				}
				switch {
				case t == target:
					vals = append(vals, int(grid[0][c]))
				case t == target-1:
					vals = append(vals, int(grid[1][c]))
				case t == target-2:
					vals = append(vals, int(grid[2][c]))
				default:
					vals = append(vals, 0)
				}
			}
		}
	}
	return vals
}

// loseGrid 五條線皆未連線。
var loseGrid = spec.Grid{
	{spec.Cherry, spec.Lemon, spec.Bar},
	{spec.Cherry, spec.Lemon, spec.Bar},
	{spec.Lemon, spec.Bar, spec.Cherry},
}

// jackpotGrid 只有中列 seven 連線（jackpot 100）。
var jackpotGrid = spec.Grid{
	{spec.Cherry, spec.Lemon, spec.Bar},
	{spec.Seven, spec.Seven, spec.Seven},
	{spec.Lemon, spec.Bar, spec.Cherry},
}

func testSetting(t *testing.T, startCredits int) *spec.GameSetting {
	t.Helper()
	gs := spec.Default()
	gs.StartCredits = startCredits
	return gs
}

func scriptedSession(t *testing.T, gs *spec.GameSetting, grid spec.Grid, spins int) *Session {
	t.Helper()
	cf := &scriptFactory{vals: scriptDraws(&gs.ReelSetting, grid, spins)}
	mr, err := NewWithSetting(cf, gs)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	s, err := mr.NewSessionWithSeed(0, nil, nil)
	if err != nil {
		t.Fatalf("new session failed: %v", err)
	}
	return s
}

// ---------------------------------------
// E2E：籌碼帳
// ---------------------------------------

func Test_LosingSpinDebitsBet(t *testing.T) {
	s := scriptedSession(t, testSetting(t, 100), loseGrid, 1)

	out, err := s.Spin(context.Background())
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if out.Grid != loseGrid {
		t.Fatalf("grid mismatch:\n%v\n--\n%v", out.Grid, loseGrid)
	}
	if out.Eval.Won() {
		t.Fatalf("expected no win: %+v", out.Eval)
	}
	if out.Credits != 90 {
		t.Fatalf("credits = %d, want 90", out.Credits)
	}

	st := s.State()
	if st.Credits != 90 || st.Spinning || st.Spins != 1 || st.LastWin != 0 {
		t.Fatalf("state: %+v", st)
	}
}

func Test_MiddleRowSevensPaysJackpot(t *testing.T) {
	s := scriptedSession(t, testSetting(t, 100), jackpotGrid, 1)

	out, err := s.Spin(context.Background())
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if out.Grid != jackpotGrid {
		t.Fatalf("grid mismatch:\n%v\n--\n%v", out.Grid, jackpotGrid)
	}
	// 100 - 10 + 100 (jackpot 取代 row 金額)
	if out.Credits != 190 {
		t.Fatalf("credits = %d, want 190", out.Credits)
	}
	if len(out.Eval.Lines) != 1 || !out.Eval.Lines[0].Jackpot {
		t.Fatalf("eval: %+v", out.Eval)
	}
	if st := s.State(); st.LastWin != 100 {
		t.Fatalf("last win = %d, want 100", st.LastWin)
	}
}

func Test_InsufficientCredits(t *testing.T) {
	s := scriptedSession(t, testSetting(t, 10), loseGrid, 1)

	if _, err := s.Spin(context.Background()); err != nil {
		t.Fatalf("first spin failed: %v", err)
	}
	if st := s.State(); st.Credits != 0 {
		t.Fatalf("credits = %d, want 0", st.Credits)
	}

	err := s.RequestSpin()
	if !errs.IsCode(err, errs.CodeInsufficientCredits) {
		t.Fatalf("expected insufficient_credits, got %v", err)
	}
	ee, ok := errs.AsErr(err)
	if !ok || ee.ErrLv != errs.Warn {
		t.Fatalf("insufficient credits should be warn: %v", err)
	}
	// 拒絕的請求不得改變任何狀態
	if st := s.State(); st.Credits != 0 || st.Spinning || st.Spins != 1 {
		t.Fatalf("state changed by rejected spin: %+v", st)
	}
}

// ---------------------------------------
// spin-lock 與結算紀律
// ---------------------------------------

func Test_SpinLock(t *testing.T) {
	gs := testSetting(t, 100)
	mr, err := NewWithSetting(core.Default(), gs)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	s, err := mr.NewSessionWithSeed(17, nil, nil)
	if err != nil {
		t.Fatalf("new session failed: %v", err)
	}

	if err := s.RequestSpin(); err != nil {
		t.Fatalf("request spin failed: %v", err)
	}

	// 轉動中再次請求：拒絕且不扣款
	err = s.RequestSpin()
	if !errs.IsCode(err, errs.CodeSpinInProgress) {
		t.Fatalf("expected spin_in_progress, got %v", err)
	}
	if st := s.State(); st.Credits != 90 {
		t.Fatalf("second request changed credits: %+v", st)
	}

	// 轉動中讀盤：合約違反
	if _, err := s.Grid(); !errs.IsCode(err, errs.CodeNotSettled) {
		t.Fatalf("expected not_settled, got %v", err)
	}

	for {
		running, err := s.Tick()
		if err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if !running {
			break
		}
	}

	st := s.State()
	if st.Spinning || st.Spins != 1 {
		t.Fatalf("state after settle: %+v", st)
	}
	if _, err := s.Grid(); err != nil {
		t.Fatalf("grid after settle failed: %v", err)
	}
	// 鎖已釋放，可再次請求
	if err := s.RequestSpin(); err != nil {
		t.Fatalf("respin after settle failed: %v", err)
	}
}

func Test_SettleExactlyOnce(t *testing.T) {
	s := scriptedSession(t, testSetting(t, 100), jackpotGrid, 1)

	if _, err := s.Spin(context.Background()); err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	credits := s.State().Credits

	// 結算後的多餘 tick 不得再次入帳
	for i := 0; i < 20; i++ {
		running, err := s.Tick()
		if err != nil {
			t.Fatalf("idle tick failed: %v", err)
		}
		if running {
			t.Fatalf("idle tick reported spinning")
		}
	}
	if got := s.State().Credits; got != credits {
		t.Fatalf("credits changed by idle ticks: %d != %d", got, credits)
	}
}

func Test_CanceledCtxLeavesStateUntouched(t *testing.T) {
	s := scriptedSession(t, testSetting(t, 100), loseGrid, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 已取消的 ctx：起轉前擋下，不扣款、不上鎖
	if _, err := s.Spin(ctx); err == nil {
		t.Fatalf("spin with canceled ctx should fail")
	}
	st := s.State()
	if st.Credits != 100 || st.Spinning || st.Spins != 0 {
		t.Fatalf("canceled spin changed state: %+v", st)
	}

	// 鎖未被扣住：後續正常 Spin 必須完整跑到結算
	out, err := s.Spin(context.Background())
	if err != nil {
		t.Fatalf("follow-up spin failed: %v", err)
	}
	if out.Credits != 90 {
		t.Fatalf("credits = %d, want 90", out.Credits)
	}
	if st := s.State(); st.Spinning || st.Spins != 1 {
		t.Fatalf("state after follow-up spin: %+v", st)
	}
}

// ---------------------------------------
// 音效觸發順序
// ---------------------------------------

type cueRecorder struct {
	cues []surface.Cue
}

func (c *cueRecorder) Play(cue surface.Cue) { c.cues = append(c.cues, cue) }

func Test_AudioCueOrder(t *testing.T) {
	gs := testSetting(t, 100)
	cf := &scriptFactory{vals: scriptDraws(&gs.ReelSetting, jackpotGrid, 1)}
	mr, err := NewWithSetting(cf, gs)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	cr := &cueRecorder{}
	s, err := mr.NewSessionWithSeed(0, nil, cr)
	if err != nil {
		t.Fatalf("new session failed: %v", err)
	}

	if _, err := s.Spin(context.Background()); err != nil {
		t.Fatalf("spin failed: %v", err)
	}

	want := []surface.Cue{surface.CueSpinStart, surface.CueSpinStop, surface.CueWin}
	if len(cr.cues) != len(want) {
		t.Fatalf("cues = %v, want %v", cr.cues, want)
	}
	for i := range want {
		if cr.cues[i] != want[i] {
			t.Fatalf("cue[%d] = %v, want %v", i, cr.cues[i], want[i])
		}
	}
}

// ---------------------------------------
// 可重現性
// ---------------------------------------

func Test_SameSeedSameOutcomes(t *testing.T) {
	gs := testSetting(t, 1000000)
	mr, err := NewWithSetting(core.Default(), gs)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	a, err := mr.NewSessionWithSeed(77, nil, nil)
	if err != nil {
		t.Fatalf("session a failed: %v", err)
	}
	b, err := mr.NewSessionWithSeed(77, nil, nil)
	if err != nil {
		t.Fatalf("session b failed: %v", err)
	}

	for i := 0; i < 50; i++ {
		oa, err := a.Spin(context.Background())
		if err != nil {
			t.Fatalf("spin a failed: %v", err)
		}
		ob, err := b.Spin(context.Background())
		if err != nil {
			t.Fatalf("spin b failed: %v", err)
		}
		if oa.Grid != ob.Grid || oa.Credits != ob.Credits {
			t.Fatalf("spin %d diverged", i)
		}
	}
}

func Test_SnapshotRestoreReplaysSpin(t *testing.T) {
	gs := testSetting(t, 1000000)
	mr, err := NewWithSetting(core.Default(), gs)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	s, err := mr.NewSessionWithSeed(99, nil, nil)
	if err != nil {
		t.Fatalf("new session failed: %v", err)
	}

	snap, err := s.SnapshotCore()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	first, err := s.Spin(context.Background())
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}

	if err := s.RestoreCore(snap); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	again, err := s.Spin(context.Background())
	if err != nil {
		t.Fatalf("replay spin failed: %v", err)
	}
	if first.Grid != again.Grid {
		t.Fatalf("replayed grid diverged:\n%v\n--\n%v", first.Grid, again.Grid)
	}
}

// ---------------------------------------
// 模擬器：分布性質
// ---------------------------------------

func Test_SimulatorUniformity(t *testing.T) {
	gs := testSetting(t, 100)
	mr, err := NewWithSetting(core.Default(), gs)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	sim, err := mr.NewSimulatorWithSeed(20240817)
	if err != nil {
		t.Fatalf("new simulator failed: %v", err)
	}

	rep, _, err := sim.Sim(10000, false)
	if err != nil {
		t.Fatalf("sim failed: %v", err)
	}
	if rep.Summary.Spins != 10000 {
		t.Fatalf("spins = %d", rep.Summary.Spins)
	}

	// 每格符號 ~1/4：逐格卡方檢定不該出現天文等級的偏離
	if rep.Uniformity.MinP < 1e-6 {
		t.Fatalf("cell uniformity rejected: min p = %v", rep.Uniformity.MinP)
	}

	// 每線中獎率 1/16、期望 RTP ≈ 1.672：抓大方向即可
	if rep.Summary.RTP < 1.3 || rep.Summary.RTP > 2.1 {
		t.Fatalf("rtp = %v outside sanity band", rep.Summary.RTP)
	}
	if rep.Summary.HitRate < 0.20 || rep.Summary.HitRate > 0.35 {
		t.Fatalf("hit rate = %v outside sanity band", rep.Summary.HitRate)
	}
}

func Test_SimulatorMPMergesAll(t *testing.T) {
	gs := testSetting(t, 100)
	mr, err := NewWithSetting(core.Default(), gs)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	sim, err := mr.NewSimulatorWithSeed(5)
	if err != nil {
		t.Fatalf("new simulator failed: %v", err)
	}

	rep, _, err := sim.SimMP(2500, 4, false)
	if err != nil {
		t.Fatalf("sim mp failed: %v", err)
	}
	if rep.Summary.Spins != 10000 {
		t.Fatalf("merged spins = %d, want 10000", rep.Summary.Spins)
	}
	if rep.Summary.TotalBet != 100000 {
		t.Fatalf("merged bet = %d", rep.Summary.TotalBet)
	}
	if math.Abs(rep.Summary.RTP-1.672) > 0.5 {
		t.Fatalf("merged rtp = %v far from expectation", rep.Summary.RTP)
	}
}

// ---------------------------------------
// runtime 生命週期
// ---------------------------------------

func Test_RuntimeClose(t *testing.T) {
	gs := testSetting(t, 100)
	mr, err := NewWithSetting(core.Default(), gs)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	rt, err := mr.BuildRuntime(nil, nil)
	if err != nil {
		t.Fatalf("build runtime failed: %v", err)
	}

	if _, err := rt.Spin(context.Background()); err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if rt.Closed() {
		t.Fatalf("runtime closed prematurely")
	}

	rt.Close()
	rt.Close() // close-once：重複關閉安全

	if !rt.Closed() || rt.ClosedReason() != "closed" {
		t.Fatalf("closed=%v reason=%q", rt.Closed(), rt.ClosedReason())
	}
	if _, err := rt.Spin(context.Background()); err == nil {
		t.Fatalf("spin after close should fail")
	}
}
