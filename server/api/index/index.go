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

// Package index 提供服務主頁：一個極簡的 endpoint 清單頁。
// 這不是 production UI；只是讓開發者打開根路徑就知道有哪些 API。
package index

import "net/http"

const indexText = `minireel

  GET  /v1/state   round state + core snapshot (base64url)
  POST /v1/spin    run one full spin to settlement
  POST /v1/sim     run a simulation, returns stat report
`

// IndexHandlerFn 回傳純文字的 API 清單。
func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(indexText))
}
