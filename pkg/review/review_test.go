package review

import (
	"testing"

	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/jjgarcianorway/anna/pkg/reliability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJuniorVerifiesCleanDraft(t *testing.T) {
	j := NewJunior(0)
	result := j.Verify(1, reliability.Input{
		GroundingRatio:   1.0,
		TotalClaims:      2,
		EvidenceRequired: true,
		NoInvention:      true,
	}, nil, nil)

	assert.True(t, result.Verified)
	assert.Equal(t, DefaultJuniorThreshold, j.Threshold)
	assert.True(t, result.Verdict.AllowPublish())
}

func TestJuniorProducesMissingEvidenceInstruction(t *testing.T) {
	j := NewJunior(0)
	result := j.Verify(1, reliability.Input{
		GroundingRatio:   0.0,
		TotalClaims:      0,
		EvidenceRequired: true,
		NoInvention:      true,
	}, nil, []probe.EvidenceKind{probe.EvidenceMemory})

	require.False(t, result.Verified)
	assert.True(t, result.Instruction.HasIssue(IssueMissingEvidence))
	assert.Contains(t, result.Instruction.RequiredClaims, "include memory data")
}

func TestJuniorRecommendsFailedProbes(t *testing.T) {
	j := NewJunior(0)
	result := j.Verify(1, reliability.Input{
		GroundingRatio:   0.9,
		TotalClaims:      3,
		EvidenceRequired: true,
		NoInvention:      true,
	}, []probe.ID{probe.Sensors()}, nil)

	require.False(t, result.Verified)
	assert.True(t, result.Instruction.HasIssue(IssueMissingProbes))
	assert.Contains(t, result.Instruction.RecommendedProbes, "sensors")
}

func TestJuniorInventionMapsToUnverifiableClaims(t *testing.T) {
	j := NewJunior(0)
	result := j.Verify(1, reliability.Input{
		GroundingRatio:   0.5,
		TotalClaims:      2,
		EvidenceRequired: true,
		NoInvention:      false,
	}, nil, nil)

	require.False(t, result.Verified)
	assert.True(t, result.Instruction.HasIssue(IssueUnverifiableClaims))
	assert.False(t, result.Verdict.AllowPublish(), "a blocker-severity verdict from invention must not allow publish")
}

func TestSeniorEscalateFindsDominantIssue(t *testing.T) {
	history := []JuniorVerification{
		{Round: 1, Instruction: RevisionInstruction{Issues: []Issue{IssueMissingEvidence}}},
		{Round: 2, Instruction: RevisionInstruction{Issues: []Issue{IssueMissingEvidence, IssueTooVague}}},
	}

	s := NewSenior()
	esc := s.Escalate(history)

	require.True(t, esc.Successful)
	assert.Equal(t, []Issue{IssueMissingEvidence}, esc.Instruction.Issues)
	assert.NotEmpty(t, esc.Instruction.RequiredClaims)
}

func TestSeniorEscalateCarriesForbiddenClaimsForward(t *testing.T) {
	history := []JuniorVerification{
		{Instruction: RevisionInstruction{
			Issues:          []Issue{IssueUnverifiableClaims},
			ForbiddenClaims: []string{"Your GPU is an Nvidia RTX 4090."},
		}},
	}

	s := NewSenior()
	esc := s.Escalate(history)

	require.True(t, esc.Successful)
	assert.Contains(t, esc.Instruction.ForbiddenClaims, "Your GPU is an Nvidia RTX 4090.")

	draft := "Here is what I found. Your GPU is an Nvidia RTX 4090."
	newDraft, log := Apply(draft, esc.Instruction)
	assert.NotContains(t, newDraft, "RTX 4090")
	assert.NotEmpty(t, log)
}

func TestSeniorEscalateFailsWithNoHistory(t *testing.T) {
	s := NewSenior()
	esc := s.Escalate(nil)

	assert.False(t, esc.Successful)
	assert.NotEmpty(t, esc.Reason)
}

func TestSeniorEscalateBreaksTiesByFixedOrder(t *testing.T) {
	history := []JuniorVerification{
		{Instruction: RevisionInstruction{Issues: []Issue{IssueTooVague}}},
		{Instruction: RevisionInstruction{Issues: []Issue{IssueMissingProbes}}},
	}

	s := NewSenior()
	esc := s.Escalate(history)

	require.True(t, esc.Successful)
	// issueOrder ranks TooVague before MissingProbes; both appear once here
	// so the earlier-in-order issue wins the tie.
	assert.Equal(t, IssueTooVague, esc.Instruction.Issues[0])
}

func TestApplyRemovesForbiddenClaimsLiterally(t *testing.T) {
	draft := "You have an RTX 4090 installed and 16 GiB of memory."
	instr := RevisionInstruction{ForbiddenClaims: []string{"You have an RTX 4090 installed and "}}

	newDraft, log := Apply(draft, instr)

	assert.Equal(t, "[removed]16 GiB of memory.", newDraft)
	assert.NotEmpty(t, log)
	assert.LessOrEqual(t, len(newDraft), len(draft)+len("[removed]"))
}

func TestApplyMarksUnsatisfiedRequiredClaims(t *testing.T) {
	draft := "Here is what I found."
	instr := RevisionInstruction{RequiredClaims: []string{"include cpu data"}}

	newDraft, log := Apply(draft, instr)

	assert.Contains(t, newDraft, "[needs: include cpu data]")
	assert.Len(t, log, 1)
}

func TestApplyIsIdempotentOnAlreadySatisfiedRequiredClaim(t *testing.T) {
	draft := "include cpu data already present"
	instr := RevisionInstruction{RequiredClaims: []string{"include cpu data"}}

	newDraft, log := Apply(draft, instr)

	assert.Equal(t, draft, newDraft)
	assert.Empty(t, log)
}

func TestApplyNeverGrowsUnboundedAcrossRounds(t *testing.T) {
	draft := "short draft"
	instr := RevisionInstruction{RequiredClaims: []string{"include memory data"}}

	first, _ := Apply(draft, instr)
	second, log := Apply(first, instr)

	assert.Equal(t, first, second, "re-applying the same instruction must not duplicate the marker")
	assert.Empty(t, log)
}
