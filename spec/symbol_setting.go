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

// Symbol 是盤面圖標的列舉值。
//
// 圖標集合是固定的四種：cherry / lemon / bar / seven。
// 比較一律用值相等；圖標本身沒有內部結構。
type Symbol uint8

const (
	Cherry Symbol = iota
	Lemon
	Bar
	Seven

	// SymbolCount 圖標總數；抽樣時作為 IntN 的上界。
	SymbolCount = 4
)

var symbolNames = [SymbolCount]string{"cherry", "lemon", "bar", "seven"}

// String 回傳圖標的設定檔名稱；非法值回傳 "unknown"。
func (s Symbol) String() string {
	if int(s) < len(symbolNames) {
		return symbolNames[s]
	}
	return "unknown"
}

// Valid 回報 s 是否屬於固定圖標集合。
func (s Symbol) Valid() bool {
	return int(s) < SymbolCount
}

// ParseSymbol 由設定檔字串解析圖標。
func ParseSymbol(str string) (Symbol, bool) {
	for i, n := range symbolNames {
		if n == str {
			return Symbol(i), true
		}
	}
	return 0, false
}

// SymbolSetting 描述圖標的顯示字符。
//
// Glyphs 僅供渲染表面使用，與計分無關；留空時採用預設字符。
// key 必須是合法圖標名稱，多寫或拼錯會在 Init 失敗。
type SymbolSetting struct {
	Glyphs   map[string]string       `yaml:"glyphs" json:"glyphs"`
	GlyphOf  [SymbolCount]string     `yaml:"-"      json:"-"`
	initFlag bool
}

var defaultGlyphs = [SymbolCount]string{"🍒", "🍋", "▅", "7"}

// Init 檢查設定並賦值
func (ss *SymbolSetting) Init() error {
	// 檢查初始化旗標
	if ss.initFlag {
		return nil
	}
	ss.GlyphOf = defaultGlyphs
	for name, glyph := range ss.Glyphs {
		sym, ok := ParseSymbol(name)
		if !ok {
			return errs.NewFatal(fmt.Sprintf("glyphs has wrong symbol name %q", name))
		}
		if glyph == "" {
			return errs.NewFatal(fmt.Sprintf("glyph for %q is empty", name))
		}
		ss.GlyphOf[sym] = glyph
	}
	ss.initFlag = true
	return nil
}
