// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime_test

import (
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"go.starlark.net/starlark"

	"go.civiltime.net/internal/scripttest"
	"go.civiltime.net/lib/datetime"
)

func TestScripts(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.star"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test scripts")
	}
	for _, filename := range files {
		t.Run(filepath.Base(filename), func(t *testing.T) {
			scripttest.RunFile(t, filename, func(thread *starlark.Thread) {
				datetime.SetNow(thread, func() (time.Time, error) {
					return time.Date(2023, 7, 4, 7, 5, 3, 7_000_000, time.UTC), nil
				})
			})
		})
	}
}
