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
	"fmt"
	"sync"

	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/sdk/core"
	"github.com/zintix-labs/minireel/sdk/pay"
	"github.com/zintix-labs/minireel/sdk/reel"
	"github.com/zintix-labs/minireel/sdk/surface"
	"github.com/zintix-labs/minireel/spec"
)

// RoundState 為回合狀態的對外快照。
type RoundState struct {
	GameName string `json:"game_name"`
	Credits  int    `json:"credits"`
	Bet      int    `json:"bet"`
	Spinning bool   `json:"spinning"`
	Spins    int64  `json:"spins"`
	LastWin  int    `json:"last_win"`
}

// SpinOutcome 為一局結算後的完整結果。
type SpinOutcome struct {
	Grid    spec.Grid      `json:"grid"`
	Eval    pay.Evaluation `json:"eval"`
	Credits int            `json:"credits"`
}

// Session 封裝一台「可對外提供轉動」的單人機台。
//
// 對外：提供 RequestSpin / Tick（互動介面逐 tick 驅動）與
// Spin（一口氣快轉整局，後端服務用）。
// 對內：持有 RNG 核心、轉輪引擎、籌碼帳與 spin-lock。
//
// 並發語意：
//   - 遊戲狀態只在持鎖路徑上變更（單一寫入者紀律）；mu 讓 HTTP 平面
//     可以安全地與互動平面共用同一台 Session。
//   - 同一時間只允許一次轉動：lock 在 RequestSpin 成功當下取得，
//     在結算完成（贏分入帳、標記連線）之後才釋放。
//
// initseed 用於記錄出生時的 seed（追溯/重現的基礎資訊）；
// 完整審計仍以 Core 的 Snapshot/Restore 合約為準。
type Session struct {
	gameName string
	gs       *spec.GameSetting
	core     *core.Core
	engine   *reel.Engine
	surf     surface.RenderSurface
	audio    surface.AudioSink

	mu       sync.Mutex
	credits  int
	spinning bool
	done     <-chan struct{}
	lastEval pay.Evaluation
	spins    int64
	initseed int64
}

// newSession 以指定 seed 建立 Session。
//
// 建立流程：
//  1. core.New(cf.New(seed)) 建出 RNG 核心
//  2. reel.NewEngine 依輪軸設定建出引擎（同時畫出初始盤面）
//  3. 籌碼帳自 StartCredits 起算
func newSession(gs *spec.GameSetting, cf core.PRNGFactory, seed int64, surf surface.RenderSurface, audio surface.AudioSink) (*Session, error) {
	if surf == nil {
		surf = surface.NopSurface{}
	}
	if audio == nil {
		audio = surface.NopAudio{}
	}

	c := core.New(cf.New(seed))
	eng, err := reel.NewEngine(c, &gs.ReelSetting, surf)
	if err != nil {
		return nil, err
	}

	s := &Session{
		gameName: gs.GameName,
		gs:       gs,
		core:     c,
		engine:   eng,
		surf:     surf,
		audio:    audio,
		credits:  gs.StartCredits,
		initseed: seed,
	}
	s.surf.Status(fmt.Sprintf("credits: %d", s.credits))
	return s, nil
}

// RequestSpin 發起一次轉動。
//
// 檢核順序（是合約的一部分）：
//  1. spin-lock：轉動中再次請求回傳 SpinInProgress（拒絕，不排隊）。
//  2. 籌碼：不足一次押注回傳 InsufficientCredits，狀態不變。
//
// 通過檢核後：當下扣除押注、清除連線標記、啟動引擎、觸發起轉音效。
// 之後由 Tick 驅動動畫直到結算。
func (s *Session) RequestSpin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestSpin()
}

func (s *Session) requestSpin() error {
	if s.spinning {
		return errs.NewCode(errs.CodeSpinInProgress, errs.Warn, "session : spin already in progress")
	}
	if s.credits < s.gs.Bet {
		return errs.NewCode(errs.CodeInsufficientCredits, errs.Warn,
			fmt.Sprintf("session : credits %d < bet %d", s.credits, s.gs.Bet))
	}

	done, err := s.engine.Spin()
	if err != nil {
		return err
	}

	s.credits -= s.gs.Bet
	s.spinning = true
	s.done = done
	s.audio.Play(surface.CueSpinStart)
	s.surf.Status(fmt.Sprintf("credits: %d", s.credits))
	return nil
}

// Tick 推進一個動畫步進，回傳是否仍在轉動中。
//
// 完成訊號在最後一輪凍結的 tick 被消費「恰好一次」：當下執行結算
// （讀盤、算分、入帳、標線、釋放 spin-lock），之後的 Tick 不做任何事。
func (s *Session) Tick() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick()
}

func (s *Session) tick() (bool, error) {
	if !s.spinning {
		return false, nil
	}

	s.engine.Tick()

	select {
	case <-s.done:
		if err := s.settle(); err != nil {
			return false, err
		}
		return false, nil
	default:
		return true, nil
	}
}

// settle 在完成訊號後執行一次結算。
func (s *Session) settle() error {
	grid, err := s.engine.Grid()
	if err != nil {
		// 完成訊號已觸發卻讀不到盤面，屬於引擎合約被破壞
		return errs.Wrap(err, "session : settle after done signal")
	}

	ev := pay.Evaluate(grid, &s.gs.PaySetting)
	s.credits += ev.Total
	s.lastEval = ev
	s.spins++

	// 結算順位：先停輪音效，再依結果標線與播放輸贏音效
	s.audio.Play(surface.CueSpinStop)
	s.engine.HighlightPaylines(ev.Lines)
	if ev.Won() {
		s.audio.Play(surface.CueWin)
		s.surf.Status(fmt.Sprintf("win +%d | credits: %d", ev.Total, s.credits))
	} else {
		s.audio.Play(surface.CueLose)
		s.surf.Status(fmt.Sprintf("credits: %d", s.credits))
	}

	// spin-lock 在入帳與標線完成後才釋放
	s.spinning = false
	s.done = nil
	return nil
}

// Spin 快轉一整局：發起轉動並連續 tick 直到結算，回傳結算結果。
//
// 供「不做逐格動畫」的呼叫端（後端服務、測試）使用。
//
// 取消語意（是合約的一部分）：ctx 只在「起轉前」檢核。一旦押注
// 扣款、引擎起轉，本局必定跑到結算才釋放 spin-lock——快轉迴圈是
// 純 CPU 的固定步數運算，中途放棄只會讓已扣的押注蒸發、鎖永遠
// 不釋放。已取消的 ctx 回傳錯誤且狀態不變。
func (s *Session) Spin(ctx context.Context) (*SpinOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.requestSpin(); err != nil {
		return nil, err
	}

	for {
		running, err := s.tick()
		if err != nil {
			return nil, err
		}
		if !running {
			break
		}
	}

	grid, err := s.engine.Grid()
	if err != nil {
		return nil, err
	}
	return &SpinOutcome{Grid: grid, Eval: s.lastEval, Credits: s.credits}, nil
}

// State 回傳回合狀態快照。
func (s *Session) State() RoundState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RoundState{
		GameName: s.gameName,
		Credits:  s.credits,
		Bet:      s.gs.Bet,
		Spinning: s.spinning,
		Spins:    s.spins,
		LastWin:  s.lastEval.Total,
	}
}

// Grid 回傳結算後的邏輯盤面；轉動中回傳 NotSettled。
func (s *Session) Grid() (spec.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Grid()
}

// LastEval 回傳上一局的結算結果（未轉過為零值）。
func (s *Session) LastEval() pay.Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEval
}

// HighlightPaylines 重新要求渲染層標記連線；空列表等同清除。
func (s *Session) HighlightPaylines(lines []pay.PayLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.HighlightPaylines(lines)
}

// SnapshotCore 取得Core狀態暫存 當前僅提供取得Core狀態
func (s *Session) SnapshotCore() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Snapshot()
}

// RestoreCore 恢復Core狀態暫存 當前僅提供恢復Core狀態
//
// 轉動中不允許恢復（盤面與 RNG 狀態會脫鉤），回傳 SpinInProgress。
func (s *Session) RestoreCore(src []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spinning {
		return errs.NewCode(errs.CodeSpinInProgress, errs.Warn, "session : restore during spin")
	}
	return s.core.Restore(src)
}

// InitSeed 回傳出生 seed（便於追溯；完整重現請用 Snapshot/Restore）。
func (s *Session) InitSeed() int64 {
	return s.initseed
}
