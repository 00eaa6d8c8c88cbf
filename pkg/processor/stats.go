package processor

// Stats are the run counters. Successful + Failed + Skipped == Groups at
// every point in the run. Rejected groups (missing master) count as failed;
// groups with no surviving children count as skipped, matching how operators
// triage the two cases.
type Stats struct {
	Groups        int
	Successful    int
	Failed        int
	Skipped       int
	RecordsMerged int
	ItemsMoved    int
}

// Apply folds one group result into the counters.
func (s *Stats) Apply(res Result) {
	s.Groups++
	switch res.Outcome {
	case OutcomeMerged, OutcomeSimulated:
		s.Successful++
		s.RecordsMerged += len(res.Children)
		s.ItemsMoved += res.ItemsMoved
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeRejected, OutcomeFailed:
		s.Failed++
	}
}

// ApplySkippedRow counts an input row that never became a group (fewer than
// two usable identifiers, or an unparseable line).
func (s *Stats) ApplySkippedRow() {
	s.Groups++
	s.Skipped++
}
