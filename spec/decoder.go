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
	"bytes"
	"encoding/json"

	"github.com/zintix-labs/minireel/errs"
	"gopkg.in/yaml.v3"
)

// GetGameSettingByYAML 由 YAML bytes 解析 GameSetting 並完成初始化檢查。
//
// 採嚴格解碼（KnownFields）：多寫或拼錯的欄位直接報錯，
// 避免設定檔靜默失效後要在 runtime 才發現。
func GetGameSettingByYAML(raw []byte) (*GameSetting, error) {
	gs := new(GameSetting)
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(gs); err != nil {
		return nil, errs.Wrap(err, "spec.decoder : decode yaml failed")
	}
	if err := gs.init(); err != nil {
		return nil, err
	}
	return gs, nil
}

// GetGameSettingByJSON 由 JSON bytes 解析 GameSetting 並完成初始化檢查。
func GetGameSettingByJSON(raw []byte) (*GameSetting, error) {
	gs := new(GameSetting)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(gs); err != nil {
		return nil, errs.Wrap(err, "spec.decoder : decode json failed")
	}
	if err := gs.init(); err != nil {
		return nil, err
	}
	return gs, nil
}

// Default 回傳內建預設設定（賠付表與節奏對齊經典 3x3 機台）。
//
// 提供給測試與不帶設定檔的組裝路徑使用；Init 已完成。
func Default() *GameSetting {
	gs := &GameSetting{
		GameName:     "minireel",
		Bet:          10,
		StartCredits: 100,
		ReelSetting: ReelSetting{
			BaseSteps:    24,
			StaggerSteps: 8,
			TickMS:       40,
		},
		PaySetting: PaySetting{
			Row:      30,
			Diagonal: 50,
			Jackpot:  100,
		},
	}
	if err := gs.init(); err != nil {
		// 預設值必須恆為合法；走到這裡代表本包自身壞掉
		panic(err)
	}
	return gs
}
