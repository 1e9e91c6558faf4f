package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_RdataTTLFlagRejectsNegative(t *testing.T) {
	err := rdataCmd.Flags().Set("ttl", "-1")
	require.Error(t, err)

	require.NoError(t, rdataCmd.Flags().Set("ttl", "60"))
	ttl, err := rdataCmd.Flags().GetUint32("ttl")
	require.NoError(t, err)
	require.Equal(t, uint32(60), ttl)
}
