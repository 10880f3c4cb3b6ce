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

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/bstree"
	cli "github.com/urfave/cli/v2"
)

var mergeCmd = &cli.Command{
	Name:  "merge",
	Usage: "merge two overlapping sets and report what stays behind",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "overlap",
			Usage: "percentage of keys the two sets share",
			Value: 50,
		},
	},
	Action: func(cctx *cli.Context) error {
		log, err := configLogger(cctx)
		if err != nil {
			return err
		}
		ks, err := keys(cctx)
		if err != nil {
			return err
		}
		overlap := cctx.Int("overlap")
		if overlap < 0 || overlap > 100 {
			return fmt.Errorf("overlap must be within [0, 100], got %d", overlap)
		}

		// Both sets hold ks[half-shared : half+shared].
		half := len(ks) / 2
		shared := half * overlap / 100
		dst, err := bstree.NewSetFrom(bstree.Less[int](), ks[:half+shared])
		if err != nil {
			return err
		}
		src, err := bstree.NewSetFrom(bstree.Less[int](), ks[half-shared:])
		if err != nil {
			return err
		}
		log.Info("starting merge", "dst", dst.Len(), "src", src.Len(), "shared", shared)

		start := time.Now()
		dst.Merge(src)
		log.Info("merge done", "took", time.Since(start), "dst", dst.Len(), "leftover", src.Len(), "height", dst.Height())

		if dst.Len() != len(ks) {
			return fmt.Errorf("merged set holds %d keys, want %d", dst.Len(), len(ks))
		}
		if src.Len() != 2*shared {
			return fmt.Errorf("leftover holds %d keys, want %d", src.Len(), 2*shared)
		}
		var bad error
		src.Ascend(func(k int) bool {
			if !dst.Contains(k) {
				bad = fmt.Errorf("leftover key %d missing from merged set", k)
			}
			return bad == nil
		})
		if bad != nil {
			return bad
		}
		if cctx.Bool("print") {
			if err := src.Print(os.Stdout); err != nil {
				return err
			}
		}
		return nil
	},
}
