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
	"flag"
	"fmt"

	"github.com/zintix-labs/minireel"
	"github.com/zintix-labs/minireel/configs"
	"github.com/zintix-labs/minireel/sdk/core"
	"github.com/zintix-labs/minireel/server"
	"github.com/zintix-labs/minireel/server/logger"
	"github.com/zintix-labs/minireel/server/svrcfg"
)

// This command is a single-machine game server entrypoint: it serves
// the embedded default config. For custom configs, assemble Minireel
// with your own fs.FS in a separate scaffold project.
func main() {
	cfg, err := loadConfigFromFlags()
	if err != nil {
		fmt.Println(err)
		return
	}
	server.Run(cfg)
}

type config struct {
	LogMode string
	SimCap  int
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, error) {
	cfg := new(config)
	flag.StringVar(&cfg.LogMode, "log-mode", "ModeDev", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.IntVar(&cfg.SimCap, "sim-cap", 1_000_000, "max spins per /v1/sim request")

	flag.Parse()

	log, _ := logger.NewAsync(4096, cfg.norm())

	mr, err := minireel.New(
		core.Default(),
		minireel.Configs(configs.FS),
	)
	if err != nil {
		return nil, err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:      log,
		SimCap:   cfg.SimCap,
		Minireel: mr,
	}
	return sCfg, nil
}

func (cfg *config) norm() logger.LogMode {
	switch cfg.LogMode {
	case "ModeDev":
		return logger.ModeDev
	case "ModeProd":
		return logger.ModeProd
	case "ModeSilence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}
