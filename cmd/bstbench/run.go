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
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
	cli "github.com/urfave/cli/v2"
)

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "insert, verify and erase keys in every container and the references",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "degree",
			Usage: "degree of the reference btree",
			Value: 32,
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
		log.Info("starting run", "count", len(ks), "order", cctx.String("order"))

		set := bstree.NewOrderedSet[int]()
		multi := bstree.NewOrderedMultiSet[int]()
		m := bstree.NewOrderedMap[int, int]()
		bt := btree.NewOrderedG[int](cctx.Int("degree"))
		lr := llrb.New()

		timed := func(name string, f func()) {
			start := time.Now()
			f()
			log.Info("phase done", "phase", name, "took", time.Since(start))
		}

		timed("set insert", func() {
			for _, k := range ks {
				set.Insert(k)
			}
		})
		timed("multiset insert", func() {
			for _, k := range ks {
				multi.Insert(k)
				multi.Insert(k)
			}
		})
		timed("map insert", func() {
			for _, k := range ks {
				m.Insert(k, -k)
			}
		})
		timed("btree insert", func() {
			for _, k := range ks {
				bt.ReplaceOrInsert(k)
			}
		})
		timed("llrb insert", func() {
			for _, k := range ks {
				lr.ReplaceOrInsert(llrb.Int(k))
			}
		})
		log.Info("tree heights", "set", set.Height(), "multiset", multi.Height(), "map", m.Height())

		if err := verify(set, multi, m, bt, lr); err != nil {
			return err
		}
		log.Debug("contents agree with references")

		if cctx.Bool("print") {
			if err := set.Print(os.Stdout); err != nil {
				return err
			}
		}

		timed("set erase", func() {
			for _, k := range ks {
				set.Delete(k)
			}
		})
		timed("multiset erase", func() {
			for _, k := range ks {
				multi.Delete(k)
			}
		})
		timed("map erase", func() {
			for _, k := range ks {
				m.Delete(k)
			}
		})
		if !set.Empty() || !multi.Empty() || !m.Empty() {
			return fmt.Errorf("containers not empty after erase: set %d, multiset %d, map %d", set.Len(), multi.Len(), m.Len())
		}
		log.Info("run complete")
		return nil
	},
}

// verify walks every container in step with the btree and checks the llrb
// size.
func verify(set *bstree.Set[int], multi *bstree.MultiSet[int], m *bstree.Map[int, int], bt *btree.BTreeG[int], lr *llrb.LLRB) error {
	if set.Len() != bt.Len() || set.Len() != lr.Len() || m.Len() != bt.Len() || multi.Len() != 2*bt.Len() {
		return fmt.Errorf("length mismatch: set %d, multiset %d, map %d, btree %d, llrb %d",
			set.Len(), multi.Len(), m.Len(), bt.Len(), lr.Len())
	}
	var err error
	si, mi, ei := set.Begin(), multi.Begin(), m.Begin()
	bt.Ascend(func(k int) bool {
		switch {
		case si.Item() != k:
			err = fmt.Errorf("set holds %d where btree holds %d", si.Item(), k)
		case mi.Item() != k || mi.Next().Item() != k:
			err = fmt.Errorf("multiset holds %d where btree holds %d twice", mi.Item(), k)
		case ei.Item().Key != k || ei.Item().Value != -k:
			err = fmt.Errorf("map holds %v where btree holds %d", ei.Item(), k)
		case !lr.Has(llrb.Int(k)):
			err = fmt.Errorf("llrb is missing %d", k)
		}
		si, mi, ei = si.Next(), mi.Next().Next(), ei.Next()
		return err == nil
	})
	return err
}
