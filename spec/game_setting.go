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

import (
	"fmt"

	"github.com/zintix-labs/minireel/errs"
)

// GameSetting 包含啟動一場遊戲所需的所有高階設定。
type GameSetting struct {
	GameName      string        `yaml:"game_name"     json:"game_name"`
	Bet           int           `yaml:"bet"           json:"bet"`
	StartCredits  int           `yaml:"start_credits" json:"start_credits"`
	ReelSetting   ReelSetting   `yaml:"reel"          json:"reel"`
	SymbolSetting SymbolSetting `yaml:"symbols"       json:"symbols"`
	PaySetting    PaySetting    `yaml:"pay"           json:"pay"`
}

// init
func (gs *GameSetting) init() error {
	if err := gs.ReelSetting.Init(); err != nil {
		return err
	}
	if err := gs.SymbolSetting.Init(); err != nil {
		return err
	}
	if err := gs.PaySetting.Init(); err != nil {
		return err
	}
	return gs.valid()
}

// valid 執行最基本的設定檔檢查，如需更多驗證可在此擴充。
func (gs *GameSetting) valid() error {

	if gs.GameName == "" {
		return errs.NewFatal("game_name required")
	}

	// valid Bet
	if gs.Bet < 1 {
		return errs.NewFatal(fmt.Sprintf("game_name: %s err:invalid bet", gs.GameName))
	}

	// 起始籌碼要至少夠轉一次
	if gs.StartCredits < gs.Bet {
		return errs.NewFatal(fmt.Sprintf("game_name: %s err:start_credits < bet", gs.GameName))
	}

	return nil
}
