package service

import (
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/model"
)

// Readiness summarizes the document set for an application. There is no
// partial credit: a single pending or rejected document fails AllVerified.
type Readiness struct {
	Complete    bool
	AllVerified bool
	Total       int
	Verified    int
}

// SummarizeReadiness reduces the current document set to the two booleans
// the decision chain gates on. An empty set is never "verified"; Complete
// will already be false in that case.
func SummarizeReadiness(documents []model.Document, minRequired int) Readiness {
	r := Readiness{
		Total:    len(documents),
		Complete: len(documents) >= minRequired,
	}

	if len(documents) == 0 {
		return r
	}

	allVerified := true
	for _, d := range documents {
		if d.Status().IsVerified() {
			r.Verified++
		} else {
			allVerified = false
		}
	}
	r.AllVerified = allVerified
	return r
}
