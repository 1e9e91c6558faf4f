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
	"strings"

	"github.com/miekg/dns"
)

// DefaultSkipBytes is the size of the corpus header preceding the rdata
// text in each input file.
const DefaultSkipBytes = 2

// DefaultRdataTTL is assumed for entries that carry no TTL of their own.
const DefaultRdataTTL = 60

// ConvertRdata reads a single rdata text snippet from src, discards the
// first skip bytes, parses the remainder as one zone-file entry against
// origin with ttl as the default, and writes the record's wire encoding
// to dest. On any failure dest is left absent.
func ConvertRdata(src, dest, origin string, ttl uint32, skip int) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read rdata input %s: %w", src, err)
	}
	if len(data) < skip {
		return fmt.Errorf("rdata input %s is shorter than its %d byte header", src, skip)
	}

	zp := dns.NewZoneParser(strings.NewReader(string(data[skip:])), origin, src)
	zp.SetDefaultTTL(ttl)
	zp.SetIncludeAllowed(false)
	rr, ok := zp.Next()
	if !ok {
		if err := zp.Err(); err != nil {
			return fmt.Errorf("failed to parse rdata input %s: %w", src, err)
		}
		return fmt.Errorf("rdata input %s contains no records", src)
	}

	buf := make([]byte, dns.Len(rr))
	off, err := dns.PackRR(rr, buf, 0, nil, false)
	if err != nil {
		return fmt.Errorf("failed to pack record from %s: %w", src, err)
	}
	if err := os.WriteFile(dest, buf[:off], 0644); err != nil {
		return fmt.Errorf("failed to write sample file %s: %w", dest, err)
	}
	return nil
}
