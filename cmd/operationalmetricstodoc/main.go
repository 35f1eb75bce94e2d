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
	"fmt"
	"io"
	"os"

	operationalMetrics "github.com/netobserv/bgp-bogons/pkg/operational/metrics"
	"github.com/netobserv/bgp-bogons/pkg/pipeline"
)

// Referencing the pipeline package links in every stage, whose package
// variables register the operational metrics documented here.
var _ *pipeline.Pipeline

const header = `> Note: this file was automatically generated, to update execute "make docs"

# bgp-bogons Operational Metrics

Each table below documents an operational metric exposed on the metrics endpoint
when ` + "`metrics.disableGlobalServer`" + ` is false.
`

func generate(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s", header, operationalMetrics.GetDocumentation())
	return err
}

func main() {
	if err := generate(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
