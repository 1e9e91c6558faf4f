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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/facebook/dns/samplegen/report"
	"github.com/facebook/dns/samplegen/stats"
	"github.com/facebook/dns/samplegen/wiregen"

	"github.com/miekg/dns"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&cfg.SrcDir, "src", "./zonefiles", "directory of zone files to watch and convert")
	watchCmd.Flags().StringVar(&cfg.DestDir, "dest", "./samples/zonefile", "directory the sample files are written to")
	watchCmd.Flags().StringVar(&cfg.OnCollision, "on-collision", "overwrite", "what to do when the sample file already exists, from this run or an earlier one. Can be: overwrite, error")
	watchCmd.Flags().IntVar(&cfg.MaxRate, "max-rate", 0, "max number of input files converted per second, 0 means unlimited")
	watchCmd.Flags().StringVar(&cfg.ExporterAddr, "exporter-addr", ":6869", "exporter bind address")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate wire samples whenever the source zone files change",
	Long: `Regenerate wire samples whenever the source zone files change

Runs the zone conversion once, then again after every change under the
source directory, until interrupted. Conversion metrics are exported
via prometheus.

Usage example:
  samplegen watch --src ./zonefiles --dest ./samples/zonefile --exporter-addr :6869
`,
	Run: func(cmd *cobra.Command, args []string) {
		ConfigureVerbosity()
		cfg.Origin = dns.Fqdn(cfg.Origin)

		// The gauges must exist before the first regeneration reports.
		var reporter stats.Reporter = &report.PrometheusMetricsReporter{Addr: cfg.ExporterAddr}
		if err := reporter.Initialize(); err != nil {
			log.Fatalf("Failed to initialize stats reporter %v", err)
		}

		sigStop := make(chan os.Signal, 1)
		signal.Notify(sigStop, syscall.SIGINT)
		signal.Notify(sigStop, syscall.SIGTERM)
		done := make(chan struct{})
		go func() {
			<-sigStop
			log.Info("No more regenerations will run")
			close(done)
		}()

		regen := func() {
			state := wiregen.NewRunState(wiregen.NewLimiter(cfg.MaxRate), time.Now)
			if err := wiregen.ConvertZoneDir(&cfg, state); err != nil {
				log.Errorf("Regeneration finished with failures: %v", err)
			}
			if err := reporter.ReportMetrics(state.ExportResults()); err != nil {
				log.Errorf("Failed to report metrics %v", err)
			}
		}
		if err := wiregen.WatchAndRegen(cfg.SrcDir, done, regen); err != nil {
			log.Fatalf("unable to watch %s: %v", cfg.SrcDir, err)
		}
	},
}
