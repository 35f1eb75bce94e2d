/*
 * Copyright (C) 2024 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netobserv/bgp-bogons/pkg/config"
	"github.com/netobserv/bgp-bogons/pkg/pipeline"
	"github.com/netobserv/bgp-bogons/pkg/test"
	"github.com/netobserv/bgp-bogons/pkg/xref"
)

// Without a routes file the configuration is rejected and the process exits with status 1
func TestTheMain(t *testing.T) {
	if os.Getenv("BE_CRASHER") == "1" {
		os.Args = []string{os.Args[0], "--delegations.type", "file"}
		main()
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=TestTheMain")
	cmd.Env = append(os.Environ(), "BE_CRASHER=1", "HOME="+t.TempDir())
	err := cmd.Run()
	var castErr *exec.ExitError
	if errors.As(err, &castErr) && !castErr.Success() {
		return
	}
	t.Fatalf("process ran with err %v, want exit status 1", err)
}

func TestPipelineConfigSetup(t *testing.T) {
	js := `{
    "Parameters": "{\"routes\":{\"type\":\"file\",\"file\":{\"filename\":\"rib.txt\"}},\"delegations\":{\"type\":\"http\"},\"index\":{\"backend\":\"bart\"},\"query\":{\"workers\":8},\"output\":{\"type\":\"stdout\"}}",
    "Health": {
        "Port": "8080"
    },
    "Profile": {
        "Port": 0
    }
}`
	var opts config.Options
	err := json.Unmarshal([]byte(js), &opts)
	require.NoError(t, err)
	cfg, err := config.ParseConfig(&opts)
	require.NoError(t, err)
	require.Equal(t, "bart", cfg.Index.Backend)
	require.Equal(t, 8, cfg.Query.Workers)
	mainPipeline, err := pipeline.NewPipeline(&cfg)
	require.NoError(t, err)
	require.NotNil(t, mainPipeline)
}

func TestBindFlags(t *testing.T) {
	var filename, backend string
	var families []string
	var workers int
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&filename, "routes.file.filename", "", "")
	cmd.Flags().StringVar(&backend, "index.backend", "trie", "")
	cmd.Flags().StringSliceVar(&families, "query.families", []string{"ipv4"}, "")
	cmd.Flags().IntVar(&workers, "query.workers", 1, "")
	require.NoError(t, cmd.Flags().Set("index.backend", "trie"))

	v := viper.New()
	v.Set("routes.file.filename", "rib.txt")
	v.Set("index.backend", "bart")
	v.Set("query.families", []interface{}{"ipv4", "ipv6"})
	t.Setenv("BGP_BOGONS_QUERY_WORKERS", "4")
	bindFlags(cmd, v)

	assert.Equal(t, "rib.txt", filename)
	// flags set on the command line win over the config
	assert.Equal(t, "trie", backend)
	assert.Equal(t, []string{"ipv4", "ipv6"}, families)
	assert.Equal(t, 4, workers)
}

func TestDumpConfigHidesSecret(t *testing.T) {
	var o config.Options
	o.Output.S3.SecretAccessKey = "hunter2"
	dump := dumpConfig(o)
	assert.NotContains(t, dump, "hunter2")
	assert.Contains(t, dump, `"SecretAccessKey": "***"`)
	assert.Equal(t, "hunter2", o.Output.S3.SecretAccessKey)
}

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.csv")
	opts = config.Options{}
	opts.Routes.Type = "file"
	opts.Routes.File.Filename = test.CreateTempFile(t, "rib.txt", test.BgpstreamRIB)
	opts.Delegations.Type = "file"
	opts.Delegations.Filename = test.CreateTempFile(t, "delegated.txt", test.DelegatedStats)
	opts.Output.Type = "file"
	opts.Output.File.Filename = out
	opts.Metrics.DisableGlobalServer = true
	var errOut bytes.Buffer
	stderr = &errOut
	t.Cleanup(func() {
		opts = config.Options{}
		stderr = os.Stderr
	})

	require.NoError(t, run())

	// the malformed record is reported with its reason at the default log level
	assert.Contains(t, errOut.String(), "skipped delegation: line 11 (apnic|ZZ|ipv4|not-an-address|256|20230202|available|apnic|e-stats): parse: ")
	assert.Contains(t, errOut.String(), "2 rows, 1 delegations skipped (parse: 1)\n")

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `203.0.113.0/24,reserved,'4608 1221 4637'
2.21.94.0/23,available,'4608 1221 4637 6453 34164','8492 34164'
`, string(content))
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	printSummary(&out, &xref.Report{Rows: make([]xref.Row, 3)})
	assert.Equal(t, "3 rows, 0 delegations skipped\n", out.String())

	out.Reset()
	printSummary(&out, &xref.Report{Diagnostics: []xref.Diagnostic{
		{Line: 4, Record: "a", Reason: xref.ReasonDecompose, Err: errors.New("overflow")},
		{Line: 9, Record: "b", Reason: xref.ReasonParse, Err: errors.New("bad address")},
		{Line: 12, Record: "c", Reason: xref.ReasonDecompose, Err: errors.New("overflow")},
	}})
	assert.Equal(t, `skipped delegation: line 4 (a): decompose: overflow
skipped delegation: line 9 (b): parse: bad address
skipped delegation: line 12 (c): decompose: overflow
0 rows, 3 delegations skipped (decompose: 2, parse: 1)
`, out.String())
}
