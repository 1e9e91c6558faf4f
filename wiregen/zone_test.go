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
	"os"
	"path/filepath"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

const testOrigin = "sample."

const testZone = `$TTL 3600
@	IN	SOA	ns1.sample. admin.sample. 2024010101 3600 900 604800 300
@	IN	NS	ns1.sample.
www	IN	A	192.0.2.1
www	IN	A	192.0.2.2
www	IN	AAAA	2001:db8::1
txt	IN	TXT	"hello"
`

func writeTestZone(t *testing.T, content string) string {
	srcDir := t.TempDir()
	path := filepath.Join(srcDir, "sample.zone")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func unpackAll(t *testing.T, wire []byte) []dns.RR {
	records := []dns.RR{}
	for off := 0; off < len(wire); {
		rr, next, err := dns.UnpackRR(wire, off)
		require.NoError(t, err)
		records = append(records, rr)
		off = next
	}
	return records
}

func Test_SampleFileName(t *testing.T) {
	require.Equal(t, "SOA.sample.", SampleFileName(dns.TypeSOA, "sample.", testOrigin))
	require.Equal(t, "SOA.sample.", SampleFileName(dns.TypeSOA, "SAMPLE.", testOrigin))
	require.Equal(t, "A.sample.www.sample.", SampleFileName(dns.TypeA, "www.sample.", testOrigin))
	require.Equal(t, "TXT.sample.txt.sample.", SampleFileName(dns.TypeTXT, "txt.sample.", testOrigin))
}

func Test_ParseCollisionPolicy(t *testing.T) {
	policy, err := ParseCollisionPolicy("overwrite")
	require.NoError(t, err)
	require.Equal(t, CollisionOverwrite, policy)
	policy, err = ParseCollisionPolicy("ERROR")
	require.NoError(t, err)
	require.Equal(t, CollisionError, policy)
	_, err = ParseCollisionPolicy("derp")
	require.Error(t, err)
}

func Test_ConvertZoneFile(t *testing.T) {
	path := writeTestZone(t, testZone)
	destDir := filepath.Join(t.TempDir(), "samples", "zonefile")

	written, err := ConvertZoneFile(path, destDir, testOrigin, CollisionOverwrite)
	require.NoError(t, err)
	require.Equal(t, 5, written)

	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	names := []string{}
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	require.ElementsMatch(t, []string{
		"SOA.sample.",
		"NS.sample.",
		"A.sample.www.sample.",
		"AAAA.sample.www.sample.",
		"TXT.sample.txt.sample.",
	}, names)
}

func Test_ConvertZoneFileWireRoundtrip(t *testing.T) {
	path := writeTestZone(t, testZone)
	destDir := t.TempDir()

	_, err := ConvertZoneFile(path, destDir, testOrigin, CollisionOverwrite)
	require.NoError(t, err)

	wire, err := os.ReadFile(filepath.Join(destDir, "A.sample.www.sample."))
	require.NoError(t, err)
	records := unpackAll(t, wire)
	require.Len(t, records, 2)
	for _, rr := range records {
		require.Equal(t, "www.sample.", rr.Header().Name)
		require.Equal(t, dns.TypeA, rr.Header().Rrtype)
		require.Equal(t, uint32(3600), rr.Header().Ttl)
	}
	require.Equal(t, "192.0.2.1", records[0].(*dns.A).A.String())
	require.Equal(t, "192.0.2.2", records[1].(*dns.A).A.String())

	wire, err = os.ReadFile(filepath.Join(destDir, "SOA.sample."))
	require.NoError(t, err)
	records = unpackAll(t, wire)
	require.Len(t, records, 1)
	soa, ok := records[0].(*dns.SOA)
	require.True(t, ok)
	require.Equal(t, "sample.", soa.Hdr.Name)
	require.Equal(t, "ns1.sample.", soa.Ns)
	require.Equal(t, uint32(2024010101), soa.Serial)
}

func Test_ConvertZoneFileIdempotent(t *testing.T) {
	path := writeTestZone(t, testZone)
	destDir := t.TempDir()

	_, err := ConvertZoneFile(path, destDir, testOrigin, CollisionOverwrite)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(destDir, "AAAA.sample.www.sample."))
	require.NoError(t, err)

	_, err = ConvertZoneFile(path, destDir, testOrigin, CollisionOverwrite)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(destDir, "AAAA.sample.www.sample."))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func Test_ConvertZoneFileCollisionError(t *testing.T) {
	path := writeTestZone(t, testZone)
	destDir := t.TempDir()

	_, err := ConvertZoneFile(path, destDir, testOrigin, CollisionError)
	require.NoError(t, err)
	_, err = ConvertZoneFile(path, destDir, testOrigin, CollisionError)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func Test_ConvertZoneFileCollisionWithStaleFile(t *testing.T) {
	path := writeTestZone(t, testZone)
	destDir := t.TempDir()
	// a leftover from an earlier run counts as a collision too
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "SOA.sample."), []byte("stale"), 0644))

	_, err := ConvertZoneFile(path, destDir, testOrigin, CollisionError)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func Test_ConvertZoneFileCreatesDest(t *testing.T) {
	path := writeTestZone(t, testZone)
	destDir := filepath.Join(t.TempDir(), "a", "b", "c")

	_, err := ConvertZoneFile(path, destDir, testOrigin, CollisionOverwrite)
	require.NoError(t, err)
	info, err := os.Stat(destDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func Test_ConvertZoneFileMalformed(t *testing.T) {
	path := writeTestZone(t, "www IN A not-an-address\n")
	destDir := t.TempDir()

	_, err := ConvertZoneFile(path, destDir, testOrigin, CollisionOverwrite)
	require.Error(t, err)
}
