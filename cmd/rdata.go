/*
Copyright (c) Meta Platforms, Inc. and affiliates.
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"time"

	"github.com/facebook/dns/samplegen/report"
	"github.com/facebook/dns/samplegen/stats"
	"github.com/facebook/dns/samplegen/wiregen"

	"github.com/miekg/dns"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(rdataCmd)
	rdataCmd.Flags().StringVar(&cfg.SrcDir, "src", "./rdata", "directory of rdata text snippets to convert")
	rdataCmd.Flags().StringVar(&cfg.DestDir, "dest", "./samples/rdata", "directory the sample files are written to")
	rdataCmd.Flags().Uint32Var(&cfg.TTL, "ttl", wiregen.DefaultRdataTTL, "TTL assumed for entries without one")
	rdataCmd.Flags().IntVar(&cfg.SkipBytes, "skip-bytes", wiregen.DefaultSkipBytes, "corpus header bytes discarded before parsing each input")
	rdataCmd.Flags().IntVar(&cfg.MaxRate, "max-rate", 0, "max number of input files converted per second, 0 means unlimited")
	rdataCmd.Flags().BoolVar(&cfg.ReportJSON, "report-json", false, "report run results to stdout in json format")
}

var rdataCmd = &cobra.Command{
	Use:   "rdata",
	Short: "Convert a directory of rdata text snippets into wire samples",
	Long: `Convert a directory of rdata text snippets into wire samples

Inputs that fail to parse are logged and skipped, the run always
completes. Each sample file keeps the name of its input file.

Usage example:
  samplegen rdata --src ./dns_rdata_fromtext.in --dest ./samples/rdata
`,
	Run: func(cmd *cobra.Command, args []string) {
		ConfigureVerbosity()
		cfg.Origin = dns.Fqdn(cfg.Origin)

		var reporter stats.Reporter = &report.LogStatsReporter{}
		if cfg.ReportJSON {
			reporter = &report.JSONStatsReporter{}
		}
		if err := reporter.Initialize(); err != nil {
			log.Errorf("Failed to initialize stats reporter %v", err)
		}

		state := wiregen.NewRunState(wiregen.NewLimiter(cfg.MaxRate), time.Now)
		if err := wiregen.ConvertRdataDir(&cfg, state); err != nil {
			log.Fatalf("unable to convert rdata snippets: %v", err)
		}
		if err := reporter.ReportMetrics(state.ExportResults()); err != nil {
			log.Errorf("Failed to report metrics %v", err)
		}
	},
}
