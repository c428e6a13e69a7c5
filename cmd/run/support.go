package main

import (
	"crypto/rand"
	"flag"
	"log"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/minireel"
	"github.com/zintix-labs/minireel/configs"
	"github.com/zintix-labs/minireel/sdk/core"
	"github.com/zintix-labs/minireel/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	worker    int
	spins     int
	seed      int64
	out       string
	pprofmode string
}

func bindVar() {
	// 綁定 Flag 到本地變數的指標 (&)
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.IntVar(&cfg.spins, "spins", 10000000, "spins per worker")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.StringVar(&cfg.out, "o", "", "write report to file (.json/.yaml), empty = stdout only")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	// given seed illeagel -> default seed
	if cfg.seed < 1 {
		seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		cfg.seed = seed.Int64()
	}
}

// 這裡解析並分支要執行的模擬器
func executeSimulator() {
	cfg.valid() // 基本檢查

	mr, err := minireel.New(
		core.Default(),
		minireel.Configs(configs.FS),
	)
	if err != nil {
		log.Fatal(err)
	}
	s, err := mr.NewSimulatorWithSeed(cfg.seed)
	if err != nil {
		log.Fatal(err)
	}
	// 至此確保可執行
	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)

	var st *stats.StatReport
	if cfg.worker == 1 { // 單線程
		p.Printf("%s[GAME:%s] [SPINS:%d] [SEED:%d]%s\n", green, s.GameName, cfg.spins, cfg.seed, reset)
		r, ut, err := s.Sim(cfg.spins, true)
		if err != nil {
			log.Fatal(err)
		}
		r.StdOut(ut)
		st = r
	} else {
		p.Printf("%s[WORKERS:%d] [GAME:%s] [SPINS:%d] [SEED:%d]%s\n", green, cfg.worker, s.GameName, cfg.worker*cfg.spins, cfg.seed, reset)
		r, ut, err := s.SimMP(cfg.spins, cfg.worker, true) // 併發
		if err != nil {
			log.Fatal(err)
		}
		r.StdOut(ut)
		st = r
	}

	if cfg.out != "" {
		if err := writeReport(st, cfg.out); err != nil {
			log.Fatal(err)
		}
		p.Printf("report written to %s\n", cfg.out)
	}
}

// writeReport 依副檔名決定報告格式（.json / .yaml / .yml）。
func writeReport(st *stats.StatReport, path string) error {
	var ren stats.StatReportRender
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		ren = &stats.JsonStatReportRender{}
	default:
		ren = &stats.YAMLStatReportRender{}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return st.WriteWith(f, ren)
}

func (cfg *config) valid() {
	// 工作協程檢查(併發數)
	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}

	// 轉數檢查
	if cfg.spins < 1 {
		log.Fatal("value err : spins must > 0")
	}
}
