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

package test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/bgp-bogons/pkg/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// BgpstreamRIB is a bgpreader dump: two RIB elems for the same prefix, one for
// a documentation prefix, a withdrawal and a state message
const BgpstreamRIB = `R|R|1659312000.000000|ris|rrc13|None|None|4608|203.119.76.5|2.21.94.0/23|203.119.76.5|4608 1221 4637 6453 34164 34164||None|None
R|R|1659312000.000000|ris|rrc04|None|None|8492|185.68.184.1|2.21.94.0/23|185.68.184.1|8492 8492 8492 34164||None|None
R|R|1659312000.000000|ris|rrc13|None|None|4608|203.119.76.5|203.0.113.0/24|203.119.76.5|4608 1221 4637||None|None
U|W|1659312001.000000|ris|rrc13|None|None|4608|203.119.76.5|198.51.100.0/24|||||
R|S|1659312002.000000|ris|rrc13|None|None|4608|203.119.76.5||||||
R|R|1659312000.000000|ris|rrc13|None|None|4608|2001:7fa:0:1::ca28:a1ea|2001:db8::/32|2001:7fa:0:1::ca28:a1ea|4608 4608 1221 64496||None|None
`

// DelegatedStats is a delegated-extended file with a version line, summary
// lines, an asn record and one malformed ip record (line 11)
const DelegatedStats = `2.3|nro|20230203|9|19700101|20230202|+0000
nro|*|asn|*|1|summary
nro|*|ipv4|*|6|summary
nro|*|ipv6|*|2|summary
afrinic|ZZ|asn|37000|1|20100101|reserved|afrinic|e-stats
afrinic|ZZ|ipv4|212.122.224.0|8192|20230202|reserved|afrinic|e-stats
apnic|ZZ|ipv4|203.0.113.0|256|20230202|reserved|apnic|e-stats
ripencc|ZZ|ipv4|2.21.94.0|512|20230202|available|ripencc|e-stats
arin|US|ipv4|198.51.100.0|256|20100101|allocated|arin|e-stats
lacnic|ZZ|ipv6|2001:db8::|32|20230202|reserved|lacnic|e-stats
apnic|ZZ|ipv4|not-an-address|256|20230202|available|apnic|e-stats
`

// CreateTempFile writes content to a file that is removed with the test
func CreateTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// InitConfig reads a yaml configuration the way the command line does and
// returns it resolved through config.ParseConfig
func InitConfig(t *testing.T, conf string) (*viper.Viper, config.ConfigFileStruct) {
	t.Helper()
	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewReader([]byte(conf))))

	b, err := json.Marshal(v.AllSettings())
	require.NoError(t, err)

	cfg, err := config.ParseConfig(&config.Options{Parameters: string(b)})
	require.NoError(t, err)
	return v, cfg
}
