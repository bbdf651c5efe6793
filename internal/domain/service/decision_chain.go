package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Decision rule chain
// ---------------------------------------------------------------------------
//
// The chain is an ordered list of rule evaluators iterated by a small
// dispatcher. Hard failures short-circuit with a terminal outcome; soft
// rules adjust state and continue. Every evaluation lands in the trace,
// terminal or not. The chain is a pure function of its inputs.

// Rule names as they appear in the trace.
const (
	RuleMinCreditScore    = "MIN_CREDIT_SCORE"
	RuleMaxDTIRatio       = "MAX_DTI_RATIO"
	RuleMinLoanAmount     = "MIN_LOAN_AMOUNT"
	RuleMaxLoanAmount     = "MAX_LOAN_AMOUNT"
	RuleDocumentsComplete = "DOCUMENTS_COMPLETE"
	RuleDocumentsVerified = "DOCUMENTS_VERIFIED"
	RuleRiskAdjustment    = "RISK_ADJUSTMENT"
)

// highRiskHaircut is the fraction of the approved amount retained for
// high-risk applicants.
const highRiskHaircut = 0.8

// RuleTraceEntry records one rule evaluation for auditability.
type RuleTraceEntry struct {
	Rule   string `json:"rule"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// DecisionInput is everything the chain needs: the application figures,
// a (fresh or cached) assessment, and the document readiness summary.
type DecisionInput struct {
	RequestedAmount decimal.Decimal
	TenureMonths    int
	Assessment      model.EligibilityAssessment
	Readiness       Readiness
}

// Outcome is the terminal result of one chain evaluation. It is ephemeral;
// persistence of status/amount/reason happens at the usecase layer.
type Outcome struct {
	Status          valueobject.ApplicationStatus
	ApprovedAmount  decimal.Decimal
	RejectionReason string
	Message         string
	NextSteps       []string
	Trace           []RuleTraceEntry
}

// chainState carries soft adjustments between rules.
type chainState struct {
	approvedAmount decimal.Decimal
	capped         bool
}

// verdict is what a single rule returns: a trace entry plus an optional
// terminal outcome. A nil terminal means "continue with the next rule".
type verdict struct {
	entry    RuleTraceEntry
	terminal *Outcome
}

type decisionRule struct {
	name string
	eval func(p Policy, in DecisionInput, st *chainState) verdict
}

// RuleChain evaluates the fixed, ordered underwriting rule sequence.
type RuleChain struct {
	policy Policy
	rules  []decisionRule
}

// NewRuleChain builds the chain for the given policy. The rule order is
// fixed; it is not user-configurable.
func NewRuleChain(policy Policy) *RuleChain {
	return &RuleChain{
		policy: policy,
		rules: []decisionRule{
			{name: RuleMinCreditScore, eval: evalMinCreditScore},
			{name: RuleMaxDTIRatio, eval: evalMaxDTIRatio},
			{name: RuleMinLoanAmount, eval: evalMinLoanAmount},
			{name: RuleMaxLoanAmount, eval: evalMaxLoanAmount},
			{name: RuleDocumentsComplete, eval: evalDocumentsComplete},
			{name: RuleDocumentsVerified, eval: evalDocumentsVerified},
			{name: RuleRiskAdjustment, eval: evalRiskAdjustment},
		},
	}
}

// Decide runs the chain. The final rule always terminates, so the returned
// outcome is always one of the four terminal states.
func (c *RuleChain) Decide(in DecisionInput) Outcome {
	st := &chainState{approvedAmount: in.RequestedAmount}
	trace := make([]RuleTraceEntry, 0, len(c.rules))

	for _, r := range c.rules {
		v := r.eval(c.policy, in, st)
		trace = append(trace, v.entry)
		if v.terminal != nil {
			out := *v.terminal
			out.Trace = trace
			return out
		}
	}

	// Unreachable: the risk adjustment rule is always terminal.
	return Outcome{
		Status:         valueobject.ApplicationStatusApproved,
		ApprovedAmount: st.approvedAmount,
		Trace:          trace,
	}
}

// ---------------------------------------------------------------------------
// Rules, in chain order
// ---------------------------------------------------------------------------

func evalMinCreditScore(p Policy, in DecisionInput, _ *chainState) verdict {
	score := in.Assessment.CreditScore
	if score < p.MinCreditScore {
		detail := fmt.Sprintf("credit score %d below minimum %d", score, p.MinCreditScore)
		return verdict{
			entry: RuleTraceEntry{Rule: RuleMinCreditScore, Passed: false, Detail: detail},
			terminal: &Outcome{
				Status:          valueobject.ApplicationStatusRejected,
				ApprovedAmount:  decimal.Zero,
				RejectionReason: "credit score below minimum requirement",
				Message: fmt.Sprintf(
					"Application rejected: your credit score of %d is below our minimum requirement of %d.",
					score, p.MinCreditScore),
				NextSteps: []string{
					"Work on improving credit score",
					"Reapply after 6 months",
					"Consider a co-applicant with better credit",
				},
			},
		}
	}
	return verdict{entry: RuleTraceEntry{Rule: RuleMinCreditScore, Passed: true}}
}

func evalMaxDTIRatio(p Policy, in DecisionInput, _ *chainState) verdict {
	dti := in.Assessment.DTIRatio
	if dti > p.MaxDTIRatio {
		detail := fmt.Sprintf("DTI ratio %.2f%% exceeds maximum %.2f%%", dti, p.MaxDTIRatio)
		return verdict{
			entry: RuleTraceEntry{Rule: RuleMaxDTIRatio, Passed: false, Detail: detail},
			terminal: &Outcome{
				Status:          valueobject.ApplicationStatusRejected,
				ApprovedAmount:  decimal.Zero,
				RejectionReason: "debt-to-income ratio too high",
				Message: fmt.Sprintf(
					"Application rejected: your debt-to-income ratio of %.2f%% exceeds our maximum limit of %.0f%%.",
					dti, p.MaxDTIRatio),
				NextSteps: []string{
					"Close some existing loans",
					"Apply with a reduced loan amount",
					"Increase income sources",
				},
			},
		}
	}
	return verdict{entry: RuleTraceEntry{Rule: RuleMaxDTIRatio, Passed: true}}
}

func evalMinLoanAmount(p Policy, in DecisionInput, _ *chainState) verdict {
	if in.RequestedAmount.LessThan(p.MinLoanAmount) {
		detail := fmt.Sprintf("loan amount %s below minimum %s",
			in.RequestedAmount.StringFixed(0), p.MinLoanAmount.StringFixed(0))
		return verdict{
			entry: RuleTraceEntry{Rule: RuleMinLoanAmount, Passed: false, Detail: detail},
			terminal: &Outcome{
				Status:          valueobject.ApplicationStatusRejected,
				ApprovedAmount:  decimal.Zero,
				RejectionReason: "loan amount below minimum threshold",
				Message: fmt.Sprintf(
					"Application rejected: the requested amount of %s is below our minimum loan amount of %s.",
					in.RequestedAmount.StringFixed(0), p.MinLoanAmount.StringFixed(0)),
				NextSteps: []string{
					"Apply for at least " + p.MinLoanAmount.StringFixed(0),
				},
			},
		}
	}
	return verdict{entry: RuleTraceEntry{Rule: RuleMinLoanAmount, Passed: true}}
}

// evalMaxLoanAmount is the single soft rule: requests over the ceiling are
// capped at the maximum and the chain continues. Deliberately asymmetric
// with the hard minimum above.
func evalMaxLoanAmount(p Policy, in DecisionInput, st *chainState) verdict {
	if in.RequestedAmount.GreaterThan(p.MaxLoanAmount) {
		st.approvedAmount = p.MaxLoanAmount
		st.capped = true
		detail := fmt.Sprintf("loan amount %s exceeds maximum %s, capped",
			in.RequestedAmount.StringFixed(0), p.MaxLoanAmount.StringFixed(0))
		return verdict{entry: RuleTraceEntry{Rule: RuleMaxLoanAmount, Passed: false, Detail: detail}}
	}
	return verdict{entry: RuleTraceEntry{Rule: RuleMaxLoanAmount, Passed: true}}
}

func evalDocumentsComplete(p Policy, in DecisionInput, _ *chainState) verdict {
	if !in.Readiness.Complete {
		detail := fmt.Sprintf("%d of %d required documents uploaded",
			in.Readiness.Total, p.MinRequiredDocs)
		return verdict{
			entry: RuleTraceEntry{Rule: RuleDocumentsComplete, Passed: false, Detail: detail},
			terminal: &Outcome{
				Status:         valueobject.ApplicationStatusDocumentsPending,
				ApprovedAmount: decimal.Zero,
				Message: "Documents required: please upload your tax identity card, " +
					"latest salary slip, bank statement and identity proof.",
				NextSteps: []string{
					"Upload all required documents",
					"Contact support if you need help",
				},
			},
		}
	}
	return verdict{entry: RuleTraceEntry{Rule: RuleDocumentsComplete, Passed: true}}
}

func evalDocumentsVerified(_ Policy, in DecisionInput, _ *chainState) verdict {
	if !in.Readiness.AllVerified {
		detail := fmt.Sprintf("%d of %d documents verified",
			in.Readiness.Verified, in.Readiness.Total)
		return verdict{
			entry: RuleTraceEntry{Rule: RuleDocumentsVerified, Passed: false, Detail: detail},
			terminal: &Outcome{
				Status:         valueobject.ApplicationStatusUnderReview,
				ApprovedAmount: decimal.Zero,
				Message: "Under review: your documents are being verified. " +
					"This usually takes 24-48 hours.",
				NextSteps: []string{
					"Wait for document verification",
					"Check back in 24 hours",
				},
			},
		}
	}
	return verdict{entry: RuleTraceEntry{Rule: RuleDocumentsVerified, Passed: true}}
}

// evalRiskAdjustment is always terminal: every path through it approves,
// with a 20% haircut on the current amount for high-risk applicants.
func evalRiskAdjustment(_ Policy, in DecisionInput, st *chainState) verdict {
	risk := in.Assessment.RiskCategory
	amount := st.approvedAmount

	switch {
	case risk.Equal(valueobject.RiskCategoryHigh):
		amount = amount.Mul(decimal.NewFromFloat(highRiskHaircut)).Round(0)
		return verdict{
			entry: RuleTraceEntry{
				Rule:   RuleRiskAdjustment,
				Passed: true,
				Detail: "high risk - approved with conditions",
			},
			terminal: &Outcome{
				Status:         valueobject.ApplicationStatusApproved,
				ApprovedAmount: amount,
				Message: fmt.Sprintf(
					"Conditionally approved for %s (adjusted based on risk profile). "+
						"You may need to provide additional security or a co-applicant.",
					amount.StringFixed(0)),
				NextSteps: []string{
					"Review and accept the offer",
					"Consider adding a co-applicant",
					"Provide additional security if available",
				},
			},
		}
	case risk.Equal(valueobject.RiskCategoryMedium):
		return verdict{
			entry: RuleTraceEntry{Rule: RuleRiskAdjustment, Passed: true},
			terminal: &Outcome{
				Status:         valueobject.ApplicationStatusApproved,
				ApprovedAmount: amount,
				Message: fmt.Sprintf(
					"Congratulations! Your loan of %s has been approved.",
					amount.StringFixed(0)),
				NextSteps: []string{
					"Review terms and conditions",
					"Sign the loan agreement",
					"Complete final verification",
					"Funds will be disbursed within 24 hours",
				},
			},
		}
	default:
		// Low risk: same numbers, preferential framing.
		return verdict{
			entry: RuleTraceEntry{Rule: RuleRiskAdjustment, Passed: true},
			terminal: &Outcome{
				Status:         valueobject.ApplicationStatusApproved,
				ApprovedAmount: amount,
				Message: fmt.Sprintf(
					"Loan approved - preferred customer! Your loan of %s qualifies for our best rates.",
					amount.StringFixed(0)),
				NextSteps: []string{
					"Review terms and conditions",
					"E-sign the loan agreement",
					"Funds disbursed within 12 hours",
				},
			},
		}
	}
}
