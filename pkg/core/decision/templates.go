package decision

import (
	"fmt"

	"decisionscan/pkg/models"
)

// diagnosis is the fixed template body for one blocker: the psychological
// reading, where it shows up on the page, and the first fix per stage.
type diagnosis struct {
	why        string
	where      string
	firstFix   map[models.Stage]string
	deeperFix  string // used when the memory layer suppresses a repeated fix
	enterprise *diagnosis
}

var diagnoses = map[models.Blocker]*diagnosis{
	models.BlockerOutcomeUnclear: {
		why:   "Visitors cannot predict what happens after they act, so they defer the decision.",
		where: "Headline and primary call-to-action: the promised outcome is vague or buried.",
		firstFix: map[models.Stage]string{
			models.StageOrientation:  "Rewrite the headline to name the concrete outcome a first-time visitor gets.",
			models.StageSenseMaking:  "Add a one-line outcome statement directly above the primary call-to-action.",
			models.StageEvaluation:   "State the specific result of choosing this option next to each plan or offer.",
			models.StageCommitment:   "Show exactly what happens after the click: steps, time, and what the visitor receives.",
			models.StagePostDecision: "Confirm the outcome the visitor just committed to and what arrives next.",
		},
		deeperFix: "Restructure the page around a single outcome narrative: one promise in the hero, proof in the middle, the same promise restated at the action point.",
	},
	models.BlockerTrustGap: {
		why:   "The page asks for action before it has earned belief; visitors hesitate because nothing vouches for the claim.",
		where: "Above the fold and around the call-to-action, where reassurance is absent at the moment of decision.",
		firstFix: map[models.Stage]string{
			models.StageOrientation:  "Introduce one credible proof point near the headline, such as a named customer or a concrete number.",
			models.StageSenseMaking:  "Place a short testimonial or recognizable customer reference next to the benefit copy.",
			models.StageEvaluation:   "Add verifiable proof, reviews, named clients, or a guarantee, beside the comparison content.",
			models.StageCommitment:   "Put reassurance at the point of action: guarantee, security note, or cancellation terms next to the button.",
			models.StagePostDecision: "Reinforce the choice with a confirmation that echoes the original proof.",
		},
		deeperFix: "Rebuild the trust arc of the page end to end: proof density should rise as the visitor approaches the action, not cluster in one section.",
		enterprise: &diagnosis{
			why:   "Informed buyers arrive with baseline trust but still need decision-grade clarity before committing.",
			where: "The gap is not credibility but first-purchase clarity: terms, pricing, and expectations for a new buyer.",
			firstFix: map[models.Stage]string{
				models.StageOrientation:  "Clarify for first-time buyers what the engagement looks like, not who the brand is.",
				models.StageSenseMaking:  "Surface the information an informed buyer compares on: terms, scope, and time to value.",
				models.StageEvaluation:   "Improve pricing clarity for first-time buyers: what is included, what is metered, what changes at renewal.",
				models.StageCommitment:   "Remove first-purchase ambiguity at the action point: contract terms, onboarding time, exit conditions.",
				models.StagePostDecision: "Confirm scope and next steps in the same terms the buyer evaluated.",
			},
			deeperFix: "Audit the buying journey for informed-buyer friction: every unanswered procurement-style question is a stall point.",
		},
	},
	models.BlockerRiskNotAddressed: {
		why:   "The visitor perceives a downside the page never acknowledges, so the safest choice is not choosing.",
		where: "Near the offer, where cost of failure, lock-in, or wasted effort goes unmentioned.",
		firstFix: map[models.Stage]string{
			models.StageOrientation:  "Name the visitor's most likely worry once, early, and answer it in one sentence.",
			models.StageSenseMaking:  "Add a what-if-it-does-not-work answer near the benefit claims.",
			models.StageEvaluation:   "State reversal terms plainly beside the offer: refunds, cancellation, data export.",
			models.StageCommitment:   "Make the exit path explicit at the action point so committing stops feeling irreversible.",
			models.StagePostDecision: "Restate the safety terms the visitor relied on when deciding.",
		},
		deeperFix: "Write the risk ledger for this offer, every downside a visitor could imagine, and answer each one where it occurs on the page.",
	},
	models.BlockerEffortTooHigh: {
		why:   "Understanding or acting on the page costs more attention than the visitor has budgeted.",
		where: "Dense copy, competing calls-to-action, or a long form between the visitor and the result.",
		firstFix: map[models.Stage]string{
			models.StageOrientation:  "Cut the hero to one idea: one headline, one supporting line, one action.",
			models.StageSenseMaking:  "Break the explanation into three scannable steps with plain-language labels.",
			models.StageEvaluation:   "Reduce the options presented at once; default to a recommended choice.",
			models.StageCommitment:   "Shorten the form to the minimum fields needed to start; ask for the rest later.",
			models.StagePostDecision: "Reduce the setup steps shown at once to the single next action.",
		},
		deeperFix: "Re-sequence the whole flow around progressive disclosure: each screen earns the right to ask for the next piece of effort.",
	},
	models.BlockerCommitmentAnxiety: {
		why:   "Pressure to commit outruns the reassurance available, so the visitor freezes rather than proceeds.",
		where: "Urgency framing and hard calls-to-action without a visible way back.",
		firstFix: map[models.Stage]string{
			models.StageOrientation:  "Soften the first ask to a no-commitment step such as seeing an example.",
			models.StageSenseMaking:  "Pair the call-to-action with its reversibility: cancel anytime, no card required.",
			models.StageEvaluation:   "Offer a low-stakes middle step, trial or sample, between comparing and buying.",
			models.StageCommitment:   "Put the strongest reassurance at the button: trial terms, guarantee, or an explicit exit.",
			models.StagePostDecision: "Reassure immediately after the commitment that the decision is reversible as promised.",
		},
		deeperFix: "Rebalance the pressure-to-reassurance ratio across the page; every urgency cue needs a matching safety cue.",
	},
	models.BlockerMotivationMismatch: {
		why:   "The page argues for something the visitor was not seeking, so the message lands flat.",
		where: "Benefit copy pitched at the wrong motivation for the traffic arriving on this page.",
		firstFix: map[models.Stage]string{
			models.StageOrientation:  "Lead with the problem the visitor searched for, not the product category.",
			models.StageSenseMaking:  "Reframe benefits in the visitor's own vocabulary; mirror the promise that brought them here.",
			models.StageEvaluation:   "Map each feature to the motivation it serves instead of listing capabilities.",
			models.StageCommitment:   "Restate the visitor's original goal in the final call-to-action.",
			models.StagePostDecision: "Tie the confirmation back to the motivation that drove the decision.",
		},
		deeperFix: "Re-derive the page's message hierarchy from actual visitor intent, entry pages, queries, ad promises, rather than from the product taxonomy.",
	},
	models.BlockerIdentityMisfit: {
		why:   "The visitor does not recognize themselves in the page, people like me do not buy this.",
		where: "Imagery, examples, and social proof that portray a different kind of buyer.",
		firstFix: map[models.Stage]string{
			models.StageOrientation:  "Show the target visitor their own situation in the first example used.",
			models.StageSenseMaking:  "Swap generic proof for proof from buyers the visitor resembles.",
			models.StageEvaluation:   "Add a for-teams-like-yours framing to the comparison content.",
			models.StageCommitment:   "Use identity-congruent language at the action point, built for X, not for everyone.",
			models.StagePostDecision: "Welcome the buyer as the kind of customer they believe themselves to be.",
		},
		deeperFix: "Re-cast the page's examples, imagery, and proof around one sharply-drawn buyer identity instead of addressing everyone.",
	},
}

// diagnosisFor resolves the template for a blocker, honoring the
// enterprise reframe when the analysis mode requires it.
func diagnosisFor(b models.Blocker, mode models.AnalysisMode) *diagnosis {
	d := diagnoses[b]
	if d == nil {
		return &diagnosis{
			why:       "A decision barrier is present but its signals are too weak to characterize precisely.",
			where:     "Across the page.",
			firstFix:  map[models.Stage]string{},
			deeperFix: "Gather more evidence before intervening.",
		}
	}
	if mode == models.ModeEnterpriseContextAware && d.enterprise != nil {
		return d.enterprise
	}
	return d
}

func (d *diagnosis) fixFor(stage models.Stage, suppressed bool) string {
	if suppressed {
		return d.deeperFix
	}
	if fix, ok := d.firstFix[stage]; ok {
		return fix
	}
	return d.deeperFix
}

// limitedFindingsOutcome is the floor result when no signal rises above
// noise. The engine never returns an empty diagnosis.
func limitedFindingsOutcome(stage models.Stage) models.DecisionOutcome {
	b := models.BlockerOutcomeUnclear
	sev := SeverityFor(b, stage)
	return models.DecisionOutcome{
		Blocker:           b,
		Category:          models.CategoryOf(b),
		Why:               "Too little signal was available to characterize the decision barrier; the most common default, unclear outcome, is assumed.",
		Where:             "Insufficient page evidence to localize.",
		WhatToChangeFirst: fmt.Sprintf("Provide more page content for analysis, then revisit the %s-stage messaging.", stage),
		Confidence:        25,
		ExpectedLift:      liftFor(sev, models.CategoryOf(b)),
		Severity:          sev,
		FindingsLimited:   true,
	}
}
