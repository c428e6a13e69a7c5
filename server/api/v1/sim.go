package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"

	"github.com/zintix-labs/minireel"
	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/server/httperr"
	"github.com/zintix-labs/minireel/server/svrcfg"
	"github.com/zintix-labs/minireel/stats"
)

type SimHandler struct {
	Minireel *minireel.Minireel
	simCap   int
}

func NewSimHandler(sCfg *svrcfg.SvrCfg) (*SimHandler, error) {
	return &SimHandler{Minireel: sCfg.Minireel, simCap: sCfg.SimCap}, nil
}

func (sh *SimHandler) Sim(w http.ResponseWriter, q *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type SimRequestBody struct {
		Spins   int    `json:"spins"`
		Workers int    `json:"workers"`
		Seed    *int64 `json:"seed,omitempty"`
	}
	// 內部結構 不影響外部 也不被外部使用
	type SimResponse struct {
		Stats    *stats.StatReport `json:"stats"`
		UsedTime int64             `json:"used_ms"`
	}
	// ---
	req := new(SimRequestBody)
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if q.Method == http.MethodGet {
		// spins
		if s := q.URL.Query().Get("spins"); s != "" {
			u, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("spins must be integer"))
				return
			}
			req.Spins = int(u)
		} else {
			// 直接空值
			httperr.Errs(w, errs.NewWarn("spins is required"))
			return
		}

		// workers
		if m := q.URL.Query().Get("workers"); m != "" {
			u, err := strconv.ParseInt(m, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("workers must be integer"))
				return
			}
			req.Workers = int(u)
		}

		// seed
		if s := q.URL.Query().Get("seed"); s != "" {
			u, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("seed must be int64"))
				return
			}
			v := u
			req.Seed = &v
		}
	}
	if q.Method == http.MethodPost {
		if err := json.NewDecoder(q.Body).Decode(req); err != nil {
			httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
			return
		}
	}
	// 業務檢驗
	if req.Spins < 1 || req.Spins > sh.simCap {
		httperr.Errs(w, errs.NewWarn(fmt.Sprintf("spins must be between 1 to %d", sh.simCap)))
		return
	}
	if req.Workers < 0 || req.Workers > runtime.NumCPU() {
		httperr.Errs(w, errs.NewWarn(fmt.Sprintf("workers must be between 0 to %d", runtime.NumCPU())))
		return
	}

	// seed 未提供時由組裝器以 crypto/rand 產生
	var (
		sim *minireel.Simulator
		err error
	)
	if req.Seed != nil {
		sim, err = sh.Minireel.NewSimulatorWithSeed(*req.Seed)
	} else {
		sim, err = sh.Minireel.NewSimulator()
	}
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// workers == 0 或 1 走單線；否則平行
	var (
		rep  *stats.StatReport
		used int64
	)
	if req.Workers > 1 {
		r, d, serr := sim.SimMP(req.Spins/req.Workers+1, req.Workers, false)
		if serr != nil {
			httperr.Errs(w, serr)
			return
		}
		rep, used = r, d.Milliseconds()
	} else {
		r, d, serr := sim.Sim(req.Spins, false)
		if serr != nil {
			httperr.Errs(w, serr)
			return
		}
		rep, used = r, d.Milliseconds()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(SimResponse{Stats: rep, UsedTime: used}); err != nil {
		httperr.Errs(w, err)
		return
	}
}
