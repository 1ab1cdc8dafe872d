package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binschema/binschema/transport"
)

func TestLoadAppliesDefaultsWithNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestOverflowPolicyValue(t *testing.T) {
	cfg := Default()
	cfg.OverflowPolicy = "terminate"
	p, err := cfg.OverflowPolicyValue()
	require.NoError(t, err)
	require.Equal(t, transport.MessageOverflowTerminate, p)

	cfg.OverflowPolicy = "bogus"
	_, err = cfg.OverflowPolicyValue()
	require.Error(t, err)
}
