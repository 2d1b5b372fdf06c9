package model

import "github.com/shopspring/decimal"

// fineLimit is the outstanding balance above which borrowing is blocked.
var fineLimit = decimal.NewFromInt(50)

// DeriveEligibility applies the borrowing rules in order: status first, then
// the loan limit, then the fine limit. A nil snapshot means the member is
// missing or inactive.
func DeriveEligibility(snap *EligibilitySnapshot) Eligibility {
	if snap == nil {
		return Eligibility{Eligible: false, Reason: "Member not found or inactive"}
	}
	if snap.MembershipStatus != StatusActive {
		return Eligibility{Eligible: false, Reason: "Member status is not active"}
	}
	if snap.ActiveLoans >= snap.MaxBooksAllowed {
		return Eligibility{Eligible: false, Reason: "Maximum book limit reached"}
	}
	if snap.TotalFines.GreaterThan(fineLimit) {
		return Eligibility{Eligible: false, Reason: "Outstanding fines exceed limit"}
	}
	return Eligibility{Eligible: true, Reason: "Member eligible to borrow"}
}
