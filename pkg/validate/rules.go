package validate

import (
	"strconv"
	"time"

	"github.com/dealdocs/termsheet/pkg/snapshot"
)

// maxNonCompeteYears is the sanity threshold beyond which a restraint
// period draws a warning. Advisory only.
const maxNonCompeteYears = 5

// businessRules run in this exact order. Each rule is skipped unless
// every field it references is non-empty, and each only ever produces
// a warning.
var businessRules = []func(*Result, snapshot.Snapshot){
	ruleCompletionAfterDueDiligence,
	ruleDepositWithinPrice,
	ruleNonCompeteSanity,
}

func applyBusinessRules(result *Result, snap snapshot.Snapshot) {
	for _, rule := range businessRules {
		rule(result, snap)
	}
}

func ruleCompletionAfterDueDiligence(result *Result, snap snapshot.Snapshot) {
	if snap.IsEmpty("dueDiligenceDate") || snap.IsEmpty("completionDate") {
		return
	}
	dd, err1 := time.Parse(DateLayout, snap.Get("dueDiligenceDate"))
	completion, err2 := time.Parse(DateLayout, snap.Get("completionDate"))
	if err1 != nil || err2 != nil {
		return
	}
	if !completion.After(dd) {
		result.warnf("completionDate", "completionDate should be after dueDiligenceDate")
	}
}

func ruleDepositWithinPrice(result *Result, snap snapshot.Snapshot) {
	if snap.IsEmpty("depositAmount") || snap.IsEmpty("purchasePrice") {
		return
	}
	deposit, err1 := strconv.ParseFloat(snap.Get("depositAmount"), 64)
	price, err2 := strconv.ParseFloat(snap.Get("purchasePrice"), 64)
	if err1 != nil || err2 != nil {
		return
	}
	if deposit > price {
		result.warnf("depositAmount", "depositAmount exceeds purchasePrice")
	}
}

func ruleNonCompeteSanity(result *Result, snap snapshot.Snapshot) {
	if snap.IsEmpty("nonCompetePeriod") {
		return
	}
	years, err := strconv.ParseFloat(snap.Get("nonCompetePeriod"), 64)
	if err != nil {
		return
	}
	if years > maxNonCompeteYears {
		result.warnf("nonCompetePeriod", "nonCompetePeriod of %v years exceeds the usual maximum of %d", years, maxNonCompeteYears)
	}
}
