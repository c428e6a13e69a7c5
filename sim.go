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
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/recorder"
	"github.com/zintix-labs/minireel/sdk/core"
	"github.com/zintix-labs/minireel/sdk/pay"
	"github.com/zintix-labs/minireel/sdk/reel"
	"github.com/zintix-labs/minireel/sdk/surface"
	"github.com/zintix-labs/minireel/spec"
	"github.com/zintix-labs/minireel/stats"
)

const capPrepare int = 100

// Simulator 用於大量快轉模擬：不經過籌碼帳與渲染層，
// 直接驅動轉輪引擎與賠付判定，以最大速度累計統計。
//
// 模擬的語意與 Session 完全一致（同一套引擎、同一套賠付），
// 差別只在沒有動畫節奏與籌碼檢核。
type Simulator struct {
	GameName  string
	gs        *spec.GameSetting
	cf        core.PRNGFactory
	initSeed  int64
	seedmaker *seedMaker
	wBuf      []*simWorker             // 併發執行引擎實例
	rBuf      []*recorder.SpinRecorder // 併發遊戲紀錄員
}

// newSimulator 入口由組裝器提供（minireel.NewSimulatorWithSeed）。
func newSimulator(gs *spec.GameSetting, cf core.PRNGFactory, seed int64) (*Simulator, error) {
	s := &Simulator{
		GameName:  gs.GameName,
		gs:        gs,
		cf:        cf,
		initSeed:  seed,
		seedmaker: newSeedMaker(seed),
		wBuf:      make([]*simWorker, 1, capPrepare),
		rBuf:      make([]*recorder.SpinRecorder, 0, capPrepare),
	}
	w, err := newSimWorker(gs, cf, seed)
	if err != nil {
		return nil, err
	}
	s.wBuf[0] = w
	return s, nil
}

// Sim 單線模擬器：連續跑指定 spins 並回傳統計結果與用時。
func (s *Simulator) Sim(spins int, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if spins < 1 {
		return nil, 0, errs.NewWarn("spins must > 0")
	}
	if len(s.rBuf) == 0 {
		s.rBuf = append(s.rBuf, recorder.New())
	}
	r := s.rBuf[0]
	w := s.wBuf[0]

	bar := pb.StartNew(spins)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < spins; i++ {
		if err := w.spinOnce(r); err != nil {
			return nil, 0, err
		}
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()

	return stats.FromRecorder(r, s.GameName, s.gs.Bet), used, nil
}

// SimMP 平行執行多個引擎，總計 spins*mp 次轉動，合併統計結果後回傳。
//
// 每個 worker 由 seedmaker 派生獨立 seed，彼此序列不相關；
// 合併結果對 worker 數不敏感（Merge 只是計數相加）。
func (s *Simulator) SimMP(spins int, mp int, showpb bool) (*stats.StatReport, time.Duration, error) {
	defer s.reset()
	if mp <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if spins < 1 {
		return nil, 0, errs.NewWarn("spins must > 0")
	}
	for len(s.wBuf) < mp {
		w, err := newSimWorker(s.gs, s.cf, s.seedmaker.next())
		if err != nil {
			return nil, 0, err
		}
		s.wBuf = append(s.wBuf, w)
	}
	for len(s.rBuf) < mp {
		s.rBuf = append(s.rBuf, recorder.New())
	}

	wg := new(sync.WaitGroup)
	wg.Add(mp)
	bar := pb.StartNew(spins * mp)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	errBuf := make([]error, mp)
	for i := 0; i < mp; i++ {
		go func(i int) {
			defer wg.Done()
			w := s.wBuf[i]
			r := s.rBuf[i]
			for n := 0; n < spins; n++ {
				if err := w.spinOnce(r); err != nil {
					errBuf[i] = err
					return
				}
				bar.Increment()
			}
		}(i)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	for _, err := range errBuf {
		if err != nil {
			return nil, 0, err
		}
	}

	merged := recorder.New()
	for _, r := range s.rBuf {
		merged.Merge(r)
	}
	return stats.FromRecorder(merged, s.GameName, s.gs.Bet), used, nil
}

func (s *Simulator) reset() {
	s.rBuf = s.rBuf[:0]
}

// simWorker 持有一個獨立引擎；非執行緒安全，一個 goroutine 一個 worker。
type simWorker struct {
	eng *reel.Engine
	gs  *spec.GameSetting
}

func newSimWorker(gs *spec.GameSetting, cf core.PRNGFactory, seed int64) (*simWorker, error) {
	eng, err := reel.NewEngine(core.New(cf.New(seed)), &gs.ReelSetting, surface.NopSurface{})
	if err != nil {
		return nil, err
	}
	return &simWorker{eng: eng, gs: gs}, nil
}

// spinOnce 快轉一局並記錄。
//
// 引擎合約保證 Spin/Tick/Grid 在此順序下不會失敗；
// 錯誤仍然上拋（而不是吞掉），讓合約被破壞時立刻浮現。
func (w *simWorker) spinOnce(r *recorder.SpinRecorder) error {
	done, err := w.eng.Spin()
	if err != nil {
		return err
	}
	for w.eng.Tick() {
	}
	<-done
	grid, err := w.eng.Grid()
	if err != nil {
		return err
	}
	ev := pay.Evaluate(grid, &w.gs.PaySetting)
	r.Record(grid, &ev, w.gs.Bet)
	return nil
}

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// state 走全週期（不重複），再用可逆 mix63 打散
//
// 注意：此方法可能在併發環境下被多 goroutines 同時呼叫（例如 SimMP）。
// 因此 state 的推進必須是原子的：
//   - 使用 CAS（Compare-And-Swap）迴圈確保每次呼叫都會取得唯一的下一個 state。
//   - 回傳值使用推進後的 state 經 mix63 打散後的結果。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()                                            // always masked
		next := (old*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next)) // 一定非負
		}
	}
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63 // 乘奇數 ⇒ mod 2^63 可逆
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
