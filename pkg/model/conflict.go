package model

// Conflicts checks whether two sections have overlapping time intervals on any shared weekday
func Conflicts(a, b *Section) bool {
	return SchedulesConflict(a.schedule, b.schedule)
}

// SchedulesConflict checks whether two weekly schedules overlap. Intervals are half-open, so back-to-back blocks do not collide
func SchedulesConflict(a, b map[Weekday][]TimeInterval) bool {
	for day, intervalsA := range a {
		intervalsB, ok := b[day]
		if !ok {
			continue
		}
		for _, intervalA := range intervalsA {
			for _, intervalB := range intervalsB {
				if intervalA.Overlaps(intervalB) {
					return true
				}
			}
		}
	}
	return false
}

// ConflictsWithAny checks the candidate against every already chosen section
func ConflictsWithAny(candidate *Section, chosen []*Section) bool {
	for _, section := range chosen {
		if Conflicts(candidate, section) {
			return true
		}
	}
	return false
}
