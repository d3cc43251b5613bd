package optimizers

// paretoReportCap truncates the reported front; the conceptual front is
// unbounded.
const paretoReportCap = 10

// dominates reports whether a dominates b under the minimization convention:
// a is no worse on every objective and strictly better on at least one.
func dominates(a, b [NumObjectives]float64) bool {
	strictlyBetter := false
	for i := 0; i < NumObjectives; i++ {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// extractParetoFront returns the non-dominated subset of the population's
// feasible members, capped for reporting. Pairwise O(n^2), fine at the
// population sizes this engine runs.
func extractParetoFront(pop *Population, cap int) []ParetoFrontEntry {
	if pop == nil {
		return nil
	}

	feasible := make([]*Individual, 0, len(pop.Members))
	for _, m := range pop.Members {
		if m.Feasible {
			feasible = append(feasible, m)
		}
	}

	front := make([]ParetoFrontEntry, 0, cap)
	for i, candidate := range feasible {
		dominated := false
		for j, other := range feasible {
			if i == j {
				continue
			}
			if dominates(other.Objectives, candidate.Objectives) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, ParetoFrontEntry{
				Design:     candidate.Design,
				Objectives: candidate.Objectives,
			})
			if len(front) >= cap {
				break
			}
		}
	}

	return front
}
