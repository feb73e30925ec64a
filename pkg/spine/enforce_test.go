package spine

import (
	"testing"

	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforceMinimumPackageCheck(t *testing.T) {
	d := EnforceMinimum("do I have nano installed?", nil)
	require.True(t, d.Enforced)
	assert.Contains(t, d.Probes, probe.PacmanQ("nano"))
	assert.Contains(t, d.Probes, probe.CommandV("nano"))
}

func TestEnforceMinimumAudioQuery(t *testing.T) {
	d := EnforceMinimum("what sound card do I have", nil)
	require.True(t, d.Enforced)
	assert.Contains(t, d.Probes, probe.LspciAudio())
	assert.Contains(t, d.Probes, probe.PactlCards())
}

func TestEnforceMinimumTemperatureQuery(t *testing.T) {
	d := EnforceMinimum("how hot is my cpu", nil)
	require.True(t, d.Enforced)
	assert.Contains(t, d.Probes, probe.Sensors())
}

func TestEnforceMinimumCPUInfoQuery(t *testing.T) {
	d := EnforceMinimum("how many cpu cores do I have", nil)
	require.True(t, d.Enforced)
	assert.Contains(t, d.Probes, probe.Lscpu())
}

func TestEnforceMinimumSystemHealthQuery(t *testing.T) {
	d := EnforceMinimum("what's wrong with my system", nil)
	require.True(t, d.Enforced)
	assert.Contains(t, d.Probes, probe.JournalErrors())
	assert.Contains(t, d.Probes, probe.FailedUnits())
	assert.Contains(t, d.Probes, probe.SystemdAnalyze())
}

func TestEnforceMinimumNoKeywordMatch(t *testing.T) {
	d := EnforceMinimum("tell me a joke", nil)
	assert.False(t, d.Enforced)
	assert.Equal(t, "no keyword matches", d.Reason)
	assert.Empty(t, d.Probes)
}

func TestEnforceMinimumPreservesTranslatorProbes(t *testing.T) {
	d := EnforceMinimum("how hot is it", []probe.ID{probe.Df()})
	assert.Contains(t, d.Probes, probe.Df())
	assert.Contains(t, d.Probes, probe.Sensors())
}

func TestEnforceMinimumPutsTranslatorProbesFirst(t *testing.T) {
	d := EnforceMinimum("how hot is it", []probe.ID{probe.Df()})
	require.Len(t, d.Probes, 2)
	assert.Equal(t, probe.Df(), d.Probes[0])
	assert.Equal(t, probe.Sensors(), d.Probes[1])
}

func TestEnforceMinimumIsIdempotent(t *testing.T) {
	first := EnforceMinimum("do I have vim installed? how hot is my cpu", nil)
	second := EnforceMinimum("do I have vim installed? how hot is my cpu", first.Probes)
	assert.Equal(t, first.Probes, second.Probes)
}

func TestExtractPackageName(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"do I have nano", "nano", true},
		{"do you have vim editor", "vim", true},
		{"have I got docker", "docker", true},
		{"is it installed", "", false},
		{"is there a package for that", "", false},
	}

	for _, tt := range tests {
		got, ok := extractPackageName(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		if ok {
			assert.Equal(t, tt.want, got, tt.text)
		}
	}
}
