// Copyright 2025 Poiesic Systems
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestLoadCandidates(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "candidates.json")
		content := `[
			{"title": "证券发行注册管理办法", "link": "https://www.csrc.gov.cn/law/1.pdf", "searchRank": 1},
			{"title": "解读报道", "link": "https://finance.eastmoney.com/a.html", "searchRank": 2}
		]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		candidates, err := loadCandidates(path)
		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, "https://www.csrc.gov.cn/law/1.pdf", candidates[0].Link)
		assert.Equal(t, 1, candidates[0].SearchRank)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadCandidates(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := loadCandidates(path)
		assert.Error(t, err)
	})

	t.Run("empty array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

		_, err := loadCandidates(path)
		assert.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			assert.NoError(t, setupLogger(newContext(level)), level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		assert.Error(t, err)
	})
}

func TestRankCommandRequiresArgs(t *testing.T) {
	app := &cli.App{
		Name: "policyrank",
		Commands: []*cli.Command{
			{
				Name:   "rank",
				Action: rankCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Required: true},
					&cli.BoolFlag{Name: "offline"},
				},
			},
		},
	}

	t.Run("query is required", func(t *testing.T) {
		err := app.Run([]string{"policyrank", "rank", "somefile.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("candidates file argument is required", func(t *testing.T) {
		err := app.Run([]string{"policyrank", "rank", "--query", "注册制"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "candidates file")
	})
}
