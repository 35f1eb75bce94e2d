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
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "net/http/pprof"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/netobserv/bgp-bogons/pkg/config"
	"github.com/netobserv/bgp-bogons/pkg/operational/health"
	"github.com/netobserv/bgp-bogons/pkg/pipeline"
	"github.com/netobserv/bgp-bogons/pkg/pipeline/utils"
	"github.com/netobserv/bgp-bogons/pkg/prometheus"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	buildVersion       = "unknown"
	buildDate          = "unknown"
	cfgFile            string
	logLevel           string
	envPrefix          = "BGP_BOGONS"
	defaultLogFileName = ".bgp-bogons"
	opts               config.Options
	// run summary and skipped records go here whatever the log level
	stderr io.Writer = os.Stderr
)

// rootCmd represents the root command
var rootCmd = &cobra.Command{
	Use:          "bgp-bogons",
	Short:        "List routed AS paths that cover unallocated address space",
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		return run()
	},
}

// initConfig use config file and ENV variables if set.
func initConfig() {
	v := viper.New()

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		// Search config in home directory with name ".bgp-bogons" (without extension).
		v.AddConfigPath(home)
		v.SetConfigName(defaultLogFileName)
	}

	// Read environment variables that match prefix
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// If a config file is found, read it in.
	cfgErr := v.ReadInConfig()

	bindFlags(rootCmd, v)

	// initialize logger
	initLogger()

	if cfgErr != nil && cfgFile != "" {
		log.Errorf("Read config error: %v", cfgErr)
	}
}

func initLogger() {
	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		ll = log.ErrorLevel
	}
	log.SetLevel(ll)
	log.SetFormatter(&log.TextFormatter{DisableColors: false, FullTimestamp: true, PadLevelText: true, DisableQuote: true})
}

func dumpConfig(opts config.Options) string {
	if opts.Output.S3.SecretAccessKey != "" {
		opts.Output.S3.SecretAccessKey = "***"
	}
	var jsonNew = jsoniter.ConfigCompatibleWithStandardLibrary
	configAsJSON, err := jsonNew.MarshalIndent(opts, "", "    ")
	if err != nil {
		panic(fmt.Sprintf("error dumping config: %v", err))
	}
	return string(configAsJSON)
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if strings.Contains(f.Name, ".") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, ".", "_"))
			_ = v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix))
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			switch typed := val.(type) {
			case bool, uint, string, int32, int16, int8, int, uint32, uint64, int64, float64, float32:
				_ = cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
			case []string:
				_ = cmd.Flags().Set(f.Name, strings.Join(typed, ","))
			case []interface{}:
				items := make([]string, 0, len(typed))
				for _, item := range typed {
					items = append(items, fmt.Sprintf("%v", item))
				}
				_ = cmd.Flags().Set(f.Name, strings.Join(items, ","))
			default:
				var jsonNew = jsoniter.ConfigCompatibleWithStandardLibrary
				b, err := jsonNew.Marshal(&val)
				if err != nil {
					log.Fatalf("can't parse flag %s into json with value %v got error %s", f.Name, val, err)
					return
				}
				_ = cmd.Flags().Set(f.Name, string(b))
			}
		}
	})
}

func initFlags() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is $HOME/%s)", defaultLogFileName))
	flags.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warning, error")
	flags.StringVar(&opts.Parameters, "parameters", "", "json of the whole run configuration; overrides the other flags")

	flags.StringVar(&opts.Routes.Type, "routes.type", api.IngestRoutesTypeName("File"), "Routing table source: file or kafka")
	flags.StringVar(&opts.Routes.File.Filename, "routes.file.filename", "", "Routing table file")
	flags.StringVar(&opts.Routes.File.Format, "routes.file.format", api.RouteFormatName("Bgpstream"), "Routing table file format: bgpstream or json")
	flags.StringSliceVar(&opts.Routes.Kafka.Brokers, "routes.kafka.brokers", nil, "Kafka brokers")
	flags.StringVar(&opts.Routes.Kafka.Topic, "routes.kafka.topic", "", "Kafka topic carrying json routes")
	flags.StringVar(&opts.Routes.Kafka.GroupID, "routes.kafka.groupId", "", "Kafka consumer group")
	flags.StringVar(&opts.Routes.Kafka.StartOffset, "routes.kafka.startOffset", "FirstOffset", "Kafka start offset: FirstOffset or LastOffset")
	flags.IntVar(&opts.Routes.Kafka.MaxMessages, "routes.kafka.maxMessages", 0, "Stop reading after this many messages (default: unbounded)")
	flags.DurationVar(&opts.Routes.Kafka.IdleTimeout.Duration, "routes.kafka.idleTimeout", 30*time.Second, "Stop reading when the topic is idle for this long")

	flags.StringVar(&opts.Delegations.Type, "delegations.type", api.IngestDelegationsTypeName("HTTP"), "Delegation source: file or http")
	flags.StringVar(&opts.Delegations.Filename, "delegations.filename", "", "Delegated-extended file")
	flags.StringVar(&opts.Delegations.URL, "delegations.url", api.DefaultDelegationsURL, "Delegated-extended download address")
	flags.DurationVar(&opts.Delegations.Timeout.Duration, "delegations.timeout", 5*time.Minute, "Timeout of a single download attempt")
	flags.IntVar(&opts.Delegations.MaxRetries, "delegations.maxRetries", 8, "Retries on transient download failures")

	flags.StringVar(&opts.Index.Backend, "index.backend", api.IndexBackendName("Trie"), "Prefix index: trie or bart")
	flags.StringSliceVar(&opts.Query.Families, "query.families", []string{"ipv4"}, "Address families to check")
	flags.StringSliceVar(&opts.Query.Statuses, "query.statuses", nil, "Delegation statuses to check (default: available, reserved)")
	flags.StringVar(&opts.Query.Filter, "query.filter", "", "Boolean expression selecting delegations; replaces families and statuses")
	flags.IntVar(&opts.Query.Workers, "query.workers", 1, "Delegations queried concurrently")

	flags.StringVar(&opts.Output.Type, "output.type", api.WriteTypeName("File"), "Report destination: stdout, file or s3")
	flags.StringVar(&opts.Output.Stdout.Format, "output.stdout.format", "csv", "Stdout format: csv or json")
	flags.StringVar(&opts.Output.File.Filename, "output.file.filename", api.DefaultOutputFilename, "Report file")
	flags.StringVar(&opts.Output.S3.Endpoint, "output.s3.endpoint", "", "S3 endpoint")
	flags.StringVar(&opts.Output.S3.AccessKeyID, "output.s3.accessKeyId", "", "S3 access key")
	flags.StringVar(&opts.Output.S3.SecretAccessKey, "output.s3.secretAccessKey", "", "S3 secret key")
	flags.StringVar(&opts.Output.S3.Bucket, "output.s3.bucket", "", "S3 bucket")
	flags.StringVar(&opts.Output.S3.Object, "output.s3.object", api.DefaultOutputFilename, "S3 object name")
	flags.BoolVar(&opts.Output.S3.Secure, "output.s3.secure", false, "Connect to S3 with https")

	flags.StringVar(&opts.Metrics.Address, "metrics.address", "", "Prometheus endpoint address")
	flags.IntVar(&opts.Metrics.Port, "metrics.port", 9090, "Prometheus endpoint port")
	flags.BoolVar(&opts.Metrics.DisableGlobalServer, "metrics.disableGlobalServer", true, "Do not serve operational metrics")
	flags.BoolVar(&opts.Metrics.SuppressGoMetrics, "metrics.suppressGoMetrics", false, "Filter out Go and process metrics")

	flags.StringVar(&opts.Health.Address, "health.address", "0.0.0.0", "Health server address")
	flags.StringVar(&opts.Health.Port, "health.port", "", "Health server port (default: disabled)")
	flags.IntVar(&opts.Profile.Port, "profile.port", 0, "Go pprof tool port (default: disabled)")
}

func main() {
	// Initialize flags (command line parameters)
	initFlags()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Initial log message
	fmt.Fprintf(stderr, "Starting %s:\n=====\nBuild version: %s\nBuild date: %s\n\n", filepath.Base(os.Args[0]), buildVersion, buildDate)
	log.Debugf("using configuration:\n%s", dumpConfig(opts))

	cfg, err := config.ParseConfig(&opts)
	if err != nil {
		return fmt.Errorf("error in parsing configuration: %w", err)
	}
	if cfg.LogLevel != "" && cfg.LogLevel != logLevel {
		logLevel = cfg.LogLevel
		initLogger()
	}

	// Setup (threads) exit manager
	ctx, cancel := utils.SetupElegantExit(context.Background())
	defer cancel()
	promServer := prometheus.InitializePrometheus(&cfg.MetricsSettings)

	mainPipeline, err := pipeline.NewPipeline(&cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	if opts.Profile.Port != 0 {
		go func() {
			log.WithField("port", opts.Profile.Port).Info("starting PProf HTTP listener")
			log.WithError(http.ListenAndServe(fmt.Sprintf(":%d", opts.Profile.Port), nil)).
				Error("PProf HTTP listener stopped working")
		}()
	}

	var healthServer *health.Server
	if opts.Health.Port != "" {
		healthServer = health.NewHealthServer(&opts, mainPipeline.IsAlive(), mainPipeline.IsReady())
	}

	report, runErr := mainPipeline.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if promServer != nil {
		_ = promServer.Shutdown(shutdownCtx)
	}
	if healthServer != nil {
		_ = healthServer.Shutdown(shutdownCtx)
	}

	printSummary(stderr, &report)
	if runErr != nil {
		return runErr
	}
	log.Debugf("exiting main run")
	return nil
}

func printSummary(w io.Writer, report *xref.Report) {
	byReason := map[string]int{}
	for _, d := range report.Diagnostics {
		byReason[d.Reason]++
		fmt.Fprintf(w, "skipped delegation: %s\n", d)
	}
	reasons := make([]string, 0, len(byReason))
	for reason, count := range byReason {
		reasons = append(reasons, fmt.Sprintf("%s: %d", reason, count))
	}
	sort.Strings(reasons)
	fmt.Fprintf(w, "%d rows, %d delegations skipped", len(report.Rows), len(report.Diagnostics))
	if len(reasons) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(reasons, ", "))
	}
	fmt.Fprintln(w)
}
