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
	RootCmd.AddCommand(zonesCmd)
	zonesCmd.Flags().StringVar(&cfg.SrcDir, "src", "./zonefiles", "directory of zone files to convert")
	zonesCmd.Flags().StringVar(&cfg.DestDir, "dest", "./samples/zonefile", "directory the sample files are written to")
	zonesCmd.Flags().StringVar(&cfg.OnCollision, "on-collision", "overwrite", "what to do when the sample file already exists, from this run or an earlier one. Can be: overwrite, error")
	zonesCmd.Flags().IntVar(&cfg.MaxRate, "max-rate", 0, "max number of input files converted per second, 0 means unlimited")
	zonesCmd.Flags().BoolVar(&cfg.ReportJSON, "report-json", false, "report run results to stdout in json format")
}

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Convert a directory of zone files into per-rrset wire samples",
	Long: `Convert a directory of zone files into per-rrset wire samples

Each rrset becomes one binary file named <TYPE>.<qualified name> under
the destination directory.

Usage example:
  samplegen zones --src ./zonefiles --dest ./samples/zonefile
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
		runErr := wiregen.ConvertZoneDir(&cfg, state)
		if err := reporter.ReportMetrics(state.ExportResults()); err != nil {
			log.Errorf("Failed to report metrics %v", err)
		}
		if runErr != nil {
			log.Fatalf("unable to convert zone files: %v", runErr)
		}
	},
}
