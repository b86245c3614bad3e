// Package decision ranks the seven decision blockers from merged evidence
// and produces the primary and optional secondary outcome. The engine is
// deterministic and cannot fail: with no usable signal it degrades to a
// limited-findings Outcome Unclear result.
package decision

import (
	"fmt"
	"math"
	"sort"

	"decisionscan/pkg/models"
)

// MemoryAdvisor is the memory layer as the engine sees it. A nil advisor
// means no history is available.
type MemoryAdvisor interface {
	AdjustConfidence(contextID string, proposed models.Blocker) (multiplier float64, note string)
	SuppressRepeatedFix(contextID string, fix string) bool
}

// Input carries everything the ranking consults.
type Input struct {
	Signals         models.DecisionSignals
	MergeConfidence float64 // [0.4, 0.95] from the evidence merger
	Features        *models.PageFeatures
	Brand           models.BrandContext
	Stage           models.StageAssessment
	ContextID       string
}

// Output is the engine's full result.
type Output struct {
	Primary    models.DecisionOutcome
	Secondary  *models.DecisionOutcome
	MemoryNote string
}

// Engine ranks blockers. It holds only its memory collaborator.
type Engine struct {
	memory MemoryAdvisor
}

// NewEngine builds an engine. memory may be nil.
func NewEngine(memory MemoryAdvisor) *Engine {
	return &Engine{memory: memory}
}

type scored struct {
	blocker models.Blocker
	score   float64
}

// Decide runs the deterministic ranking.
func (e *Engine) Decide(in Input) Output {
	ranked := e.rank(in)

	if len(ranked) == 0 || ranked[0].score <= 0 {
		out := Output{Primary: limitedFindingsOutcome(in.Stage.Stage)}
		if e.memory != nil {
			mult, note := e.memory.AdjustConfidence(in.ContextID, out.Primary.Blocker)
			out.Primary.Confidence = roundConfidence(float64(out.Primary.Confidence) * mult)
			out.MemoryNote = note
		}
		return out
	}

	primary := ranked[0]
	confidence := e.baseConfidence(ranked, in.MergeConfidence)

	var memoryNote string
	mult := 1.0
	if e.memory != nil {
		mult, memoryNote = e.memory.AdjustConfidence(in.ContextID, primary.blocker)
	}
	confidence = confidence * mult

	primaryOut := e.buildOutcome(primary.blocker, in, confidence)

	out := Output{Primary: primaryOut, MemoryNote: memoryNote}

	// Secondary: within 15% of the primary score and a different category.
	for _, cand := range ranked[1:] {
		if cand.score < primary.score*0.85 {
			break
		}
		if models.CategoryOf(cand.blocker) == models.CategoryOf(primary.blocker) {
			continue
		}
		secondary := e.buildOutcome(cand.blocker, in, confidence*0.85)
		out.Secondary = &secondary
		break
	}
	return out
}

func (e *Engine) rank(in Input) []scored {
	ranked := make([]scored, 0, len(models.AllBlockers))
	for _, b := range models.AllBlockers {
		score := blockerScore(b, in.Signals)
		if b == models.BlockerTrustGap && in.Brand.AnalysisMode == models.ModeEnterpriseContextAware {
			score *= enterpriseTrustPenalty
		}
		ranked = append(ranked, scored{blocker: b, score: score})
	}
	// Stable sort keeps the declared blocker order as the tie-break.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	return ranked
}

// baseConfidence grows with the gap between the primary and runner-up
// scores and is scaled by how confident the evidence merger was.
func (e *Engine) baseConfidence(ranked []scored, mergeConf float64) float64 {
	gapRatio := 0.0
	if len(ranked) > 1 && ranked[0].score > 0 {
		gapRatio = (ranked[0].score - ranked[1].score) / ranked[0].score
	}
	if mergeConf <= 0 {
		mergeConf = 0.7
	}
	return 100 * mergeConf * (0.7 + 0.3*gapRatio)
}

func (e *Engine) buildOutcome(b models.Blocker, in Input, confidence float64) models.DecisionOutcome {
	d := diagnosisFor(b, in.Brand.AnalysisMode)
	sev := SeverityFor(b, in.Stage.Stage)

	fix := d.fixFor(in.Stage.Stage, false)
	if e.memory != nil && e.memory.SuppressRepeatedFix(in.ContextID, fix) {
		fix = d.fixFor(in.Stage.Stage, true)
		fmt.Printf("[DECISION] Repeated fix suppressed for context %s, recommending deeper intervention\n", in.ContextID)
	}

	return models.DecisionOutcome{
		Blocker:           b,
		Category:          models.CategoryOf(b),
		Why:               d.why,
		Where:             d.where,
		WhatToChangeFirst: fix,
		Confidence:        roundConfidence(confidence),
		ExpectedLift:      liftFor(sev, models.CategoryOf(b)),
		Severity:          sev,
	}
}

func roundConfidence(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
