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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/zintix-labs/minireel"
	"github.com/zintix-labs/minireel/configs"
	"github.com/zintix-labs/minireel/corefmt"
	"github.com/zintix-labs/minireel/errs"
	"github.com/zintix-labs/minireel/sdk/core"
	"github.com/zintix-labs/minireel/term"
)

// 互動模式：Enter 轉一次，q 離開。
// 動畫由 time.Ticker 以設定檔的 tick_ms 驅動，逐 tick 呼叫 Session.Tick。
func main() {
	var (
		seed int64
		snap string
	)
	flag.Int64Var(&seed, "seed", -1, "int64 seed for random number generator, <1 = auto")
	flag.StringVar(&snap, "snap", "", "base64url core snapshot to restore (from /v1/state)")
	flag.Parse()

	mr, err := minireel.New(
		core.Default(),
		minireel.Configs(configs.FS),
	)
	if err != nil {
		log.Fatal(err)
	}

	gs := mr.Setting()
	screen := term.NewScreen(os.Stdout, &gs.SymbolSetting)
	chime := term.NewChime(os.Stdout)

	s, err := newSession(mr, seed, screen, chime)
	if err != nil {
		log.Fatal(err)
	}

	// -snap：用 /v1/state 回報的快照接續同一條 RNG 序列
	if snap != "" {
		src, err := corefmt.DecodeBase64URL(snap)
		if err != nil {
			log.Fatal(err)
		}
		if err := s.RestoreCore(src); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("%s | bet %d | Enter to spin, q to quit\n", gs.GameName, gs.Bet)
	tick := time.Duration(gs.ReelSetting.TickMS) * time.Millisecond
	in := bufio.NewScanner(os.Stdin)

	for in.Scan() {
		if in.Text() == "q" {
			return
		}
		if err := s.RequestSpin(); err != nil {
			if errs.IsCode(err, errs.CodeInsufficientCredits) {
				fmt.Println("out of credits, game over")
				return
			}
			log.Fatal(err)
		}
		if err := animate(s, tick); err != nil {
			log.Fatal(err)
		}
	}
}

func newSession(mr *minireel.Minireel, seed int64, screen *term.Screen, chime *term.Chime) (*minireel.Session, error) {
	if seed < 1 {
		return mr.NewSession(screen, chime)
	}
	return mr.NewSessionWithSeed(seed, screen, chime)
}

// animate 以 ticker 驅動單局動畫直到結算。
func animate(s *minireel.Session, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for range ticker.C {
		running, err := s.Tick()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
	}
	return nil
}
