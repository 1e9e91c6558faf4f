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

// Package wiregen turns DNS zone files and rdata text snippets into
// per-rrset wire-format sample files.
package wiregen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miekg/dns"
	log "github.com/sirupsen/logrus"
)

// CollisionPolicy decides what happens when an rrset maps to a sample
// file name that already exists in the destination directory.
type CollisionPolicy string

// CollisionOverwrite replaces the existing sample file.
// CollisionError fails the conversion instead. The existence check does
// not distinguish a collision within this run from a sample file left
// by an earlier run, so an error run needs a clean destination.
const (
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionError     CollisionPolicy = "error"
)

// ParseCollisionPolicy validates a policy name given on the command line.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(s)) {
	case CollisionOverwrite:
		return CollisionOverwrite, nil
	case CollisionError:
		return CollisionError, nil
	default:
		return "", fmt.Errorf("invalid collision policy: %s", s)
	}
}

// Config carries the settings shared by the samplegen subcommands.
type Config struct {
	LogLevel     string
	SrcDir       string
	DestDir      string
	Origin       string
	OnCollision  string
	MaxRate      int
	TTL          uint32
	SkipBytes    int
	ReportJSON   bool
	ExporterAddr string
}

// rrsetKey identifies a resource record set within one zone.
type rrsetKey struct {
	name   string
	rrtype uint16
}

// rrset is a named collection of records sharing owner name and type,
// in zone-file order.
type rrset struct {
	key     rrsetKey
	records []dns.RR
}

// SampleFileName returns the sample file name for an rrset. The apex
// uses the bare origin, any other owner name is prefixed with the
// origin, so "www.sample." under origin "sample." becomes
// "A.sample.www.sample.".
func SampleFileName(rrtype uint16, name, origin string) string {
	qualified := origin
	if !strings.EqualFold(name, origin) {
		qualified = origin + name
	}
	return fmt.Sprintf("%s.%s", dns.Type(rrtype).String(), qualified)
}

// readZone parses a zone file anchored at origin into records in file order.
func readZone(path, origin string) ([]dns.RR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zp := dns.NewZoneParser(f, origin, path)
	records := []dns.RR{}
	for rr, ok := zp.Next(); ok; rr, ok = zp.Next() {
		records = append(records, rr)
	}
	if err := zp.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// groupRRSets groups records by (owner name, rrtype) preserving the
// order in which each set first appears.
func groupRRSets(records []dns.RR) []*rrset {
	byKey := map[rrsetKey]*rrset{}
	sets := []*rrset{}
	for _, rr := range records {
		key := rrsetKey{name: rr.Header().Name, rrtype: rr.Header().Rrtype}
		set, ok := byKey[key]
		if !ok {
			set = &rrset{key: key}
			byKey[key] = set
			sets = append(sets, set)
		}
		set.records = append(set.records, rr)
	}
	return sets
}

// packRRSet concatenates the canonical wire encoding of every record
// in the set.
func packRRSet(set *rrset) ([]byte, error) {
	wire := []byte{}
	for _, rr := range set.records {
		buf := make([]byte, dns.Len(rr))
		off, err := dns.PackRR(rr, buf, 0, nil, false)
		if err != nil {
			return nil, fmt.Errorf("failed to pack %s record for %s: %w", dns.Type(set.key.rrtype), set.key.name, err)
		}
		wire = append(wire, buf[:off]...)
	}
	return wire, nil
}

// ConvertZoneFile parses the zone file at path anchored at origin and
// writes one binary sample file per rrset into destDir, creating the
// directory if needed. It returns the number of sample files written.
func ConvertZoneFile(path, destDir, origin string, policy CollisionPolicy) (int, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create destination directory %s: %w", destDir, err)
	}
	records, err := readZone(path, origin)
	if err != nil {
		return 0, fmt.Errorf("failed to parse zone file %s: %w", path, err)
	}
	written := 0
	for _, set := range groupRRSets(records) {
		name := SampleFileName(set.key.rrtype, set.key.name, origin)
		dest := filepath.Join(destDir, name)
		if policy == CollisionError {
			if _, statErr := os.Stat(dest); statErr == nil {
				return written, fmt.Errorf("sample file %s already exists", dest)
			}
		}
		wire, err := packRRSet(set)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(dest, wire, 0644); err != nil {
			return written, fmt.Errorf("failed to write sample file %s: %w", dest, err)
		}
		log.Debugf("Wrote %d bytes to %s", len(wire), dest)
		written++
	}
	return written, nil
}
