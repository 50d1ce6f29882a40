package result

// PointsFor maps a sanitized rank to series points. Bracket bounds are
// inclusive; anything outside the table, SentinelRank included, scores 1.
func PointsFor(rank int) int {
	switch {
	case rank == 1:
		return 32
	case rank == 2:
		return 26
	case rank >= 3 && rank <= 4:
		return 20
	case rank >= 5 && rank <= 8:
		return 14
	case rank >= 9 && rank <= 16:
		return 8
	case rank >= 17 && rank <= 32:
		return 4
	case rank >= 33 && rank <= 64:
		return 2
	default:
		return 1
	}
}
