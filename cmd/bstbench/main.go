// Copyright 2023 Google Inc.
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

// Tool to exercise the bstree containers against balanced reference trees.
// Intended for development: it shows how far the unbalanced tree degrades
// for a given insertion order, and cross-checks its contents.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/carlmjohnson/versioninfo"
	cli "github.com/urfave/cli/v2"
)

func main() {
	newApp().RunAndExitOnError()
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bstbench"
	app.Usage = "exercise bstree containers against balanced reference trees"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of keys to insert",
			Value:   10000,
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed for key generation",
			Value: 1,
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "insertion order: random, ascending or descending",
			Value: "random",
		},
		&cli.BoolFlag{
			Name:  "print",
			Usage: "render the tree shape (only sensible for small counts)",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity: debug, info, warn or error",
			Value:   "info",
			EnvVars: []string{"BSTBENCH_LOG_LEVEL"},
		},
	}
	app.Commands = []*cli.Command{
		runCmd,
		mergeCmd,
	}
	return app
}

func configLogger(cctx *cli.Context) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cctx.String("log-level"), err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// keys returns count distinct keys in the requested order.
func keys(cctx *cli.Context) ([]int, error) {
	count := cctx.Int("count")
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}
	out := make([]int, count)
	switch order := cctx.String("order"); order {
	case "random":
		copy(out, rand.New(rand.NewSource(cctx.Int64("seed"))).Perm(count))
	case "ascending":
		for i := range out {
			out[i] = i
		}
	case "descending":
		for i := range out {
			out[i] = count - i - 1
		}
	default:
		return nil, fmt.Errorf("unknown order %q", order)
	}
	return out, nil
}
