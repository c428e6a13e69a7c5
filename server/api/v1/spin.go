package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zintix-labs/minireel"
	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/server/httperr"
	"github.com/zintix-labs/minireel/server/svrcfg"
)

func (c *SpinHandler) Spin(w http.ResponseWriter, q *http.Request) {
	// 請求方法校驗（spin 無參數：bet 固定、單人機台）
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// 設置超時 context
	ctx := q.Context()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// 開始 Spin
	result, err := c.rt.Spin(ctx)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		httperr.Errs(w, err)
		return
	}
}

// ============================================================
// ** SpinHandler **
// ============================================================

// SpinHandler 持有一台對外服務的 SessionRuntime；
// Spin 與 State 共用同一台 Session（state 反映 spin 的結果）。
type SpinHandler struct {
	rt *minireel.SessionRuntime
}

func NewSpinHandler(sCfg *svrcfg.SvrCfg) (*SpinHandler, error) {
	rt, err := sCfg.Minireel.BuildRuntime(nil, nil)
	if err != nil {
		return nil, errs.Wrap(err, "build spin handler error")
	}
	return &SpinHandler{rt: rt}, nil
}
