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
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/sdk/surface"
	"github.com/zintix-labs/minireel/spec"
)

// SessionRuntime 把單一 Session 包成可對外服務的 runtime。
//
// 職責：
//   - 提供 close-once 的生命週期（done channel 為唯一真相來源）。
//   - 在每個對外入口先檢查 ctx 與 runtime 狀態，再轉交 Session。
//
// 單人遊戲只有一台 Session；多人/多機台不在此 runtime 的範圍。
type SessionRuntime struct {
	// build-time 來源（只讀引用）
	mr *Minireel

	// data-plane
	s *Session

	// lifecycle
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string
}

// BuildRuntime 建立對外服務用的 runtime（seed 由 crypto/rand 產生）。
func (mr *Minireel) BuildRuntime(surf surface.RenderSurface, audio surface.AudioSink) (*SessionRuntime, error) {
	s, err := mr.NewSession(surf, audio)
	if err != nil {
		return nil, err
	}

	rt := &SessionRuntime{
		mr:   mr,
		s:    s,
		done: make(chan struct{}),
	}
	rt.reason.Store("")
	return rt, nil
}

// Spin 快轉一整局並回傳結算結果。
func (rt *SessionRuntime) Spin(ctx context.Context) (*SpinOutcome, error) {
	if err := rt.guard(ctx); err != nil {
		return nil, err
	}
	return rt.s.Spin(ctx)
}

// State 回傳回合狀態快照。
func (rt *SessionRuntime) State(ctx context.Context) (RoundState, error) {
	if err := rt.guard(ctx); err != nil {
		return RoundState{}, err
	}
	return rt.s.State(), nil
}

// SnapshotCore 取得 Session 的 Core 狀態（審計/重現用途）。
func (rt *SessionRuntime) SnapshotCore(ctx context.Context) ([]byte, error) {
	if err := rt.guard(ctx); err != nil {
		return nil, err
	}
	return rt.s.SnapshotCore()
}

// Setting 回傳遊戲設定（唯讀使用）。
func (rt *SessionRuntime) Setting() *spec.GameSetting {
	return rt.mr.Setting()
}

func (rt *SessionRuntime) guard(ctx context.Context) error {
	select {
	case <-ctx.Done():
		// 如果通知取消
		return errs.NewWarn("request canceled/timeout: " + ctx.Err().Error())
	case <-rt.done:
		// done is the source of truth; keep a fast boolean for cheap reads/telemetry.
		rt.closed.Store(true)
		return errs.NewFatal("session runtime closed: " + rt.ClosedReason())
	default:
	}
	return nil
}

// Close transitions the runtime into a closed state. It is safe to call multiple times.
func (rt *SessionRuntime) Close() {
	rt.closeWithReason("closed")
}

// closeWithReason closes the runtime and records the reason (written once).
func (rt *SessionRuntime) closeWithReason(reason string) {
	rt.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		rt.reason.Store(reason)
		rt.closed.Store(true)
		close(rt.done)
	})
}

// Closed reports whether the runtime has been closed.
func (rt *SessionRuntime) Closed() bool {
	return rt.closed.Load()
}

func (rt *SessionRuntime) ClosedReason() string {
	if v := rt.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
