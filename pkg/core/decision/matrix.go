package decision

import "decisionscan/pkg/models"

// blockerScore computes the fixed signal-to-blocker weighting for one
// blocker. Scores are on an open scale; only their ordering and relative
// gaps matter.
func blockerScore(b models.Blocker, s models.DecisionSignals) float64 {
	hi := func(l models.Level) float64 { return float64(l.Ord()) }
	lo := func(l models.Level) float64 { return float64(2 - l.Ord()) }

	switch b {
	case models.BlockerOutcomeUnclear:
		return 1.0*hi(s.CognitiveLoad) + 1.0*lo(s.PromiseStrength)
	case models.BlockerTrustGap:
		return 1.0*lo(s.ReassuranceLevel) + 1.0*hi(s.RiskExposure)
	case models.BlockerRiskNotAddressed:
		return 0.8*hi(s.RiskExposure) + 0.4*lo(s.ReassuranceLevel) + 0.6*hi(s.ExpectationGap)
	case models.BlockerEffortTooHigh:
		return 1.5 * hi(s.CognitiveLoad)
	case models.BlockerCommitmentAnxiety:
		return 1.0*hi(s.PressureLevel) + 1.0*lo(s.ReassuranceLevel)
	case models.BlockerMotivationMismatch:
		return 1.0*lo(s.EmotionalTone) + 0.5*lo(s.PromiseStrength)
	case models.BlockerIdentityMisfit:
		return 0.5*lo(s.EmotionalTone) + 0.7*hi(s.ExpectationGap)
	}
	return 0
}

// enterpriseTrustPenalty downgrades the Trust Gap score in
// enterprise-context-aware mode; established brands do not read as
// untrustworthy to their visitors.
const enterpriseTrustPenalty = 0.6

// severityMatrix is the fixed (blocker, stage) qualifier table.
var severityMatrix = map[models.Blocker]map[models.Stage]models.FrictionSeverity{
	models.BlockerOutcomeUnclear: {
		models.StageOrientation:  models.SeverityAcceptable,
		models.StageSenseMaking:  models.SeverityWarning,
		models.StageEvaluation:   models.SeverityCritical,
		models.StageCommitment:   models.SeverityCritical,
		models.StagePostDecision: models.SeverityWarning,
	},
	models.BlockerTrustGap: {
		models.StageOrientation:  models.SeverityNatural,
		models.StageSenseMaking:  models.SeverityAcceptable,
		models.StageEvaluation:   models.SeverityWarning,
		models.StageCommitment:   models.SeverityCritical,
		models.StagePostDecision: models.SeverityWarning,
	},
	models.BlockerRiskNotAddressed: {
		models.StageOrientation:  models.SeverityNatural,
		models.StageSenseMaking:  models.SeverityAcceptable,
		models.StageEvaluation:   models.SeverityWarning,
		models.StageCommitment:   models.SeverityHighRisk,
		models.StagePostDecision: models.SeverityWarning,
	},
	models.BlockerEffortTooHigh: {
		models.StageOrientation:  models.SeverityAcceptable,
		models.StageSenseMaking:  models.SeverityAcceptable,
		models.StageEvaluation:   models.SeverityWarning,
		models.StageCommitment:   models.SeverityHighRisk,
		models.StagePostDecision: models.SeverityWarning,
	},
	models.BlockerCommitmentAnxiety: {
		models.StageOrientation:  models.SeverityNatural,
		models.StageSenseMaking:  models.SeverityNatural,
		models.StageEvaluation:   models.SeverityAcceptable,
		models.StageCommitment:   models.SeverityCritical,
		models.StagePostDecision: models.SeverityWarning,
	},
	models.BlockerMotivationMismatch: {
		models.StageOrientation:  models.SeverityWarning,
		models.StageSenseMaking:  models.SeverityWarning,
		models.StageEvaluation:   models.SeverityAcceptable,
		models.StageCommitment:   models.SeverityAcceptable,
		models.StagePostDecision: models.SeverityNatural,
	},
	models.BlockerIdentityMisfit: {
		models.StageOrientation:  models.SeverityWarning,
		models.StageSenseMaking:  models.SeverityWarning,
		models.StageEvaluation:   models.SeverityWarning,
		models.StageCommitment:   models.SeverityAcceptable,
		models.StagePostDecision: models.SeverityNatural,
	},
}

// SeverityFor looks up the fixed matrix.
func SeverityFor(b models.Blocker, stage models.Stage) models.FrictionSeverity {
	if row, ok := severityMatrix[b]; ok {
		if sev, ok := row[stage]; ok {
			return sev
		}
	}
	return models.SeverityAcceptable
}

// liftFor maps severity and category to the directional lift tier. The
// tiers are explicitly directional, never numeric guarantees.
func liftFor(sev models.FrictionSeverity, cat models.BlockerCategory) models.LiftTier {
	switch sev {
	case models.SeverityCritical, models.SeverityHighRisk:
		if cat == models.CategoryCognitive || cat == models.CategoryTrust {
			return models.LiftHigh
		}
		return models.LiftMedium
	case models.SeverityWarning:
		return models.LiftMedium
	default:
		return models.LiftLow
	}
}
