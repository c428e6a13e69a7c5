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

package svrcfg

import (
	"log/slog"

	"github.com/zintix-labs/minireel"
	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/server/logger"
)

type SvrCfg struct {
	Log      *slog.Logger
	SimCap   int
	Minireel *minireel.Minireel
}

func (sc *SvrCfg) Vaild() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}

	// 10,000 <= sc.SimCap <= 3,000,000
	// for 資源管理（/v1/sim 單請求上限）
	sc.SimCap = max(10_000, sc.SimCap)
	sc.SimCap = min(3_000_000, sc.SimCap)
	if sc.Minireel == nil {
		return errs.NewFatal("minireel is required")
	}
	return nil
}
