package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zintix-labs/minireel"
	"github.com/zintix-labs/minireel/corefmt"
	"github.com/zintix-labs/minireel/server/httperr"
)

// StateResponse 是 /v1/state 的回應 DTO。
//
// Snap 是 Core 快照的 base64url 字串：可貼回工具端做 Restore，
// 讓任何一局都可以被完整重現（審計用途）。
type StateResponse struct {
	State minireel.RoundState `json:"state"`
	Snap  string              `json:"snap"`
}

func (c *SpinHandler) State(w http.ResponseWriter, q *http.Request) {
	// Get方法限定
	if q.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := q.Context()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	st, err := c.rt.State(ctx)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	snap, err := c.rt.SnapshotCore(ctx)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	resp := StateResponse{
		State: st,
		Snap:  corefmt.EncodeBase64URL(snap),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		httperr.Errs(w, err)
		return
	}
}
