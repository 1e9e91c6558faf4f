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

package wiregen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/facebook/dns/samplegen/stats"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// RunState holds the state of one conversion run.
type RunState struct {
	// limiter caps the number of input files handled per second.
	limiter ratelimit.Limiter
	// startTime is the time when the run has been started.
	startTime time.Time
	// files is the number of input files converted successfully.
	files int
	// rrsets is the number of sample files written.
	rrsets int
	// failures is the number of input files that failed to convert.
	failures int
	// durations contain per input file conversion time.
	durations []float64
	// m protects all fields.
	m sync.Mutex

	// nowfunc is used by unittests to manipulate Now(). normally it's time.Now
	nowfunc func() time.Time
}

// NewRunState creates a new RunState instance
func NewRunState(limiter ratelimit.Limiter, nowfunc func() time.Time) *RunState {
	return &RunState{
		limiter:   limiter,
		startTime: nowfunc(),
		durations: make([]float64, 0),
		nowfunc:   nowfunc,
	}
}

// NewLimiter builds a file rate limiter, unlimited when maxRate is 0.
func NewLimiter(maxRate int) ratelimit.Limiter {
	if maxRate > 0 {
		return ratelimit.New(maxRate)
	}
	return ratelimit.NewUnlimited()
}

func (r *RunState) addConverted(rrsets int, duration float64) {
	r.m.Lock()
	defer r.m.Unlock()
	r.files++
	r.rrsets += rrsets
	r.durations = append(r.durations, duration)
}

func (r *RunState) addFailure(duration float64) {
	r.m.Lock()
	defer r.m.Unlock()
	r.failures++
	r.durations = append(r.durations, duration)
}

// ExportResults returns the metrics of the run so far.
func (r *RunState) ExportResults() *stats.Metrics {
	r.m.Lock()
	defer r.m.Unlock()
	return &stats.Metrics{
		Elapsed:   r.nowfunc().Sub(r.startTime),
		Files:     r.files,
		RRSets:    r.rrsets,
		Failures:  r.failures,
		Durations: append([]float64{}, r.durations...),
	}
}

// sourceFiles lists the regular files of dir in sorted name order.
func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list source directory %s: %w", dir, err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// ConvertZoneDir converts every file of cfg.SrcDir as a zone file. A
// file that fails to convert is counted and logged, and the remaining
// files are still processed. The returned error summarizes failures.
func ConvertZoneDir(cfg *Config, state *RunState) error {
	policy, err := ParseCollisionPolicy(cfg.OnCollision)
	if err != nil {
		return err
	}
	paths, err := sourceFiles(cfg.SrcDir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		state.limiter.Take()
		start := state.nowfunc()
		written, err := ConvertZoneFile(path, cfg.DestDir, cfg.Origin, policy)
		duration := float64(state.nowfunc().Sub(start))
		if err != nil {
			log.Errorf("Failed to convert zone file %s: %v", path, err)
			state.addFailure(duration)
			continue
		}
		log.Debugf("Converted %s into %d sample files", path, written)
		state.addConverted(written, duration)
	}
	if failed := state.ExportResults().Failures; failed > 0 {
		return fmt.Errorf("%d of %d zone files failed to convert", failed, len(paths))
	}
	return nil
}

// ConvertRdataDir converts every file of cfg.SrcDir as an rdata snippet
// into a sample file of the same name under cfg.DestDir. Conversion
// errors are logged and swallowed, matching the corpus workflow where a
// share of the inputs is expected to be unparsable.
func ConvertRdataDir(cfg *Config, state *RunState) error {
	if err := os.MkdirAll(cfg.DestDir, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", cfg.DestDir, err)
	}
	paths, err := sourceFiles(cfg.SrcDir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		state.limiter.Take()
		dest := filepath.Join(cfg.DestDir, filepath.Base(path))
		start := state.nowfunc()
		err := ConvertRdata(path, dest, cfg.Origin, cfg.TTL, cfg.SkipBytes)
		duration := float64(state.nowfunc().Sub(start))
		if err != nil {
			log.Errorf("%v", err)
			state.addFailure(duration)
			continue
		}
		state.addConverted(1, duration)
	}
	return nil
}
