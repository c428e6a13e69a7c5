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

// Package minireel 提供 3x3 拉霸小遊戲的「組裝入口（assembler）」。
//
// Minireel 負責把兩個必需的地基組裝在一起，並提供建立 Session 與 Simulator 的入口：
//  1. GameSetting：遊戲設定（押注、輪軸節奏、賠付表），一律以 fs.FS 注入設定檔來源。
//  2. PRNGFactory：亂數核心工廠，保證可重現（reproducible）與可審計（auditable）。
//
// 設計重點：
//   - Minireel 本身不綁定任何「檔案路徑」概念：設定檔來源一律以 fs.FS 的形式注入。
//   - Session 是對外提供轉動的最小單位：單人、單機台，持有籌碼與 spin-lock。
//   - Simulator 用於大量快轉模擬，與 Session 共用同一套輪軸與賠付語意。
//
// 典型使用情境：
//   - 互動介面（cmd/play）：由 Minireel 建立 Session，以 time.Ticker 驅動動畫。
//   - 後端服務（HTTP）：由 Minireel 建立 Session，每個請求快轉一整局。
//   - 模擬器（cmd/run）：由 Minireel 建立 Simulator 進行大量模擬。
package minireel

import (
	"crypto/rand"
	"fmt"
	"io/fs"
	"math"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/sdk/core"
	"github.com/zintix-labs/minireel/sdk/surface"
	"github.com/zintix-labs/minireel/spec"
)

// Configs 用來把一或多個設定檔來源（fs.FS）打包成 New() 需要的參數。
//
// 為什麼是 fs.FS：
//   - 你可以用 go:embed 把 configs 直接編進 binary（部署最穩定，不依賴工作目錄）。
//   - 也可以用 os.DirFS 在本機開發時讀取目錄。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Minireel 是組裝器：持有解析完成的遊戲設定與 RNG 工廠。
//
// 使用流程分成兩階段：
//   - 組裝階段：New() 掃描設定來源、嚴格解析、fail-fast。
//   - 執行階段：NewSession / NewSimulator 產生可運行的實體。
//
// 同一個 Minireel 建出的所有 Session/Simulator 共用同一份設定與同一個
// RNG 工廠；各實體的 PRNG 彼此獨立（各自的 seed、各自的狀態）。
type Minireel struct {
	gs *spec.GameSetting
	cf core.PRNGFactory
}

// New 建立一個 Minireel instance。
//
// 參數要求（是合約的一部分）：
//   - cf 不能為 nil：沒有 RNG 工廠就無法建立可重現/可審計的核心。
//   - cfgs 至少一個：沒有設定檔來源就無法解析 GameSetting。
//
// 掃描規則：
//  1. 設定來源必須是平的（不允許子目錄），副檔名 .yaml/.yml/.json。
//  2. 單機台遊戲只接受「恰好一份」設定檔；找到多份直接失敗，
//     避免選哪份設定檔的行為不確定。
//  3. Fail-fast：讀取/解析/檢查任一步失敗立即回傳 error。
func New(cf core.PRNGFactory, cfgs []fs.FS) (*Minireel, error) {
	if cf == nil {
		return nil, errs.NewFatal("core factory required")
	}
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}

	var (
		gs    *spec.GameSetting
		found string
	)
	for _, src := range cfgs {
		walkErr := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == "." {
					return nil
				}
				return errs.NewFatal(fmt.Sprintf("configs must be flat (no subdir): %q", path))
			}

			base := filepath.Base(path)
			if strings.HasPrefix(base, ".") {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(base))
			if ext != ".yaml" && ext != ".yml" && ext != ".json" {
				return nil
			}

			if gs != nil {
				return errs.NewFatal(fmt.Sprintf("multiple game configs: %s and %s", found, base))
			}

			raw, rerr := fs.ReadFile(src, path)
			if rerr != nil {
				return errs.NewFatal(fmt.Sprintf("read config failed: %s", base))
			}

			var gerr error
			switch ext {
			case ".json":
				gs, gerr = spec.GetGameSettingByJSON(raw)
			default:
				gs, gerr = spec.GetGameSettingByYAML(raw)
			}
			if gerr != nil {
				return errs.Wrap(gerr, fmt.Sprintf("parse gamesetting failed: %s", base))
			}
			found = base
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}
	if gs == nil {
		return nil, errs.NewFatal("no config file found")
	}

	return &Minireel{gs: gs, cf: cf}, nil
}

// NewWithSetting 以現成的 GameSetting 建立 Minireel（測試與程式內組裝用）。
func NewWithSetting(cf core.PRNGFactory, gs *spec.GameSetting) (*Minireel, error) {
	if cf == nil {
		return nil, errs.NewFatal("core factory required")
	}
	if gs == nil {
		return nil, errs.NewFatal("game setting required")
	}
	return &Minireel{gs: gs, cf: cf}, nil
}

// Setting 回傳解析完成的遊戲設定（唯讀使用；執行階段請勿修改）。
func (mr *Minireel) Setting() *spec.GameSetting {
	return mr.gs
}

// NewSession 建立一個 Session（seed 由 crypto/rand 產生）。
//
// 這裡使用 crypto/rand 產生 seed 是為了：
//   - 在對外服務情境避免可預測 RNG
//   - 同時保留可追溯性（seed 會被記錄在 Session.initseed）
func (mr *Minireel) NewSession(surf surface.RenderSurface, audio surface.AudioSink) (*Session, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, errs.Wrap(err, "new crypto seed error in go std lib")
	}
	return mr.NewSessionWithSeed(seed.Int64(), surf, audio)
}

// NewSessionWithSeed 與 NewSession 相同，但由呼叫端指定初始 seed。
//
// 使用情境：
//   - 可重現的測試：同一份設定 + 同一個 seed，應產生一致的隨機序列。
//
// 注意：seed 只是「出生入口」。若要在任意時間點完整重現，
// 請使用 Session 的 SnapshotCore/RestoreCore（以 []byte 交換狀態）。
func (mr *Minireel) NewSessionWithSeed(seed int64, surf surface.RenderSurface, audio surface.AudioSink) (*Session, error) {
	return newSession(mr.gs, mr.cf, seed, surf, audio)
}

// NewSimulator 建立模擬器（seed 由 crypto/rand 產生）。
func (mr *Minireel) NewSimulator() (*Simulator, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, errs.Wrap(err, "new crypto seed error in go std lib")
	}
	return mr.NewSimulatorWithSeed(seed.Int64())
}

// NewSimulatorWithSeed 與 NewSimulator 相同，但由呼叫端指定初始 seed。
// 多工模擬的每個 worker 會由此 seed 以固定算法派生子 seed。
func (mr *Minireel) NewSimulatorWithSeed(seed int64) (*Simulator, error) {
	return newSimulator(mr.gs, mr.cf, seed)
}
