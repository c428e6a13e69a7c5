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

import "strings"

// Grid 為結算後的盤面快照，row-major：Grid[row][col]。
//
// row 0 為畫面最上列；col 對應轉輪索引（由左至右）。
type Grid [Rows][Reels]Symbol

// String 以符號名稱輸出盤面，主要供日誌與測試失敗訊息使用。
func (g Grid) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < Reels; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g[r][c].String())
		}
	}
	return sb.String()
}
