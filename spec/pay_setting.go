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

// PaySetting 描述賠付金額的設定。
//
// 三個層級：
//   - Row: 任一橫列三連線
//   - Diagonal: 任一對角線三連線
//   - Jackpot: 連線圖標為 seven 時取代 Row/Diagonal 的金額（不疊加）
type PaySetting struct {
	Row      int `yaml:"row"      json:"row"`
	Diagonal int `yaml:"diagonal" json:"diagonal"`
	Jackpot  int `yaml:"jackpot"  json:"jackpot"`
	initFlag bool
}

// Init 檢查不合法的設定
func (ps *PaySetting) Init() error {
	// 檢查初始化旗標
	if ps.initFlag {
		return nil
	}
	if ps.Row < 1 || ps.Diagonal < 1 || ps.Jackpot < 1 {
		return errs.NewFatal("pay amounts must be >= 1")
	}
	// jackpot 是最高層級；低於一般連線就失去意義
	if ps.Jackpot < ps.Row || ps.Jackpot < ps.Diagonal {
		return errs.NewFatal("jackpot must be >= row and >= diagonal")
	}
	ps.initFlag = true
	return nil
}
