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

package spec

import "github.com/zintix-labs/minireel/errs"

// 盤面為固定 3x3：三軸、每軸三個可見圖標。
const (
	Reels = 3
	Rows  = 3
)

// ReelSetting 描述輪軸動畫節奏的設定。
//
// Fields:
//   - BaseSteps: 第 0 軸的行進步數（每 tick 前進一步）
//   - StaggerSteps: 每往右一軸額外增加的步數，保證輪軸由左至右依序停輪
//   - TickMS: 即時播放時一個 tick 的毫秒數（模擬器會忽略，直接快轉）
type ReelSetting struct {
	BaseSteps    int `yaml:"base_steps"    json:"base_steps"`
	StaggerSteps int `yaml:"stagger_steps" json:"stagger_steps"`
	TickMS       int `yaml:"tick_ms"       json:"tick_ms"`
	initFlag     bool
}

// Init 檢查不合法的設定
func (rs *ReelSetting) Init() error {
	// 檢查初始化旗標
	if rs.initFlag {
		return nil
	}
	// base_steps 至少要讓三個可見圖標全部在行進中被重抽過，
	// 否則停輪後的盤面會殘留起轉前的圖標，破壞「停輪當下獨立均勻抽出」的合約。
	if rs.BaseSteps < Rows {
		return errs.Fatalf("base_steps must be >= %d", Rows)
	}
	// stagger_steps >= 1 使停輪順序嚴格由左至右
	if rs.StaggerSteps < 1 {
		return errs.NewFatal("stagger_steps must be >= 1")
	}
	if rs.TickMS < 1 {
		return errs.NewFatal("tick_ms must be >= 1")
	}
	rs.initFlag = true
	return nil
}

// TargetOf 回傳第 i 軸的行進目標步數。
func (rs *ReelSetting) TargetOf(i int) int {
	return rs.BaseSteps + i*rs.StaggerSteps
}
