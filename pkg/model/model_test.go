package model

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSection(t *testing.T, subject, group, professor string, rating float64, days string, ranges ...string) *Section {
	t.Helper()
	teacher, err := NewProfessor(professor, "", rating)
	require.NoError(t, err)
	blocks, err := ParseBlocks(days, ranges...)
	require.NoError(t, err)
	section, err := NewSection(teacher, subject, group, blocks)
	require.NoError(t, err)
	return section
}

func TestTimeIntervalValidation(t *testing.T) {
	valid := [][2]int{{700, 830}, {0, 2359}, {1159, 1200}}
	for _, bounds := range valid {
		_, err := NewTimeInterval(bounds[0], bounds[1])
		assert.NoError(t, err, "%v should be valid", bounds)
	}

	invalid := [][2]int{{900, 900}, {1000, 900}, {760, 800}, {2300, 2400}, {-100, 100}, {800, 875}}
	for _, bounds := range invalid {
		_, err := NewTimeInterval(bounds[0], bounds[1])
		assert.ErrorIs(t, err, ErrInvalidInterval, "%v should be invalid", bounds)
	}
}

func TestParseTimeInterval(t *testing.T) {
	// Act
	interval, err := ParseTimeInterval(" 0700 - 0830 ")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 700, interval.Start())
	assert.Equal(t, 830, interval.End())
	assert.Equal(t, 90, interval.Minutes())
	assert.Equal(t, "07:00-08:30", interval.Format())

	for _, raw := range []string{"0700", "0700-0830-0900", "ab-0830", "0900-0800", ""} {
		_, err := ParseTimeInterval(raw)
		assert.ErrorIs(t, err, ErrInvalidInterval, raw)
	}
}

func TestTimeIntervalOverlapIsHalfOpen(t *testing.T) {
	morning, _ := NewTimeInterval(900, 1100)
	noon, _ := NewTimeInterval(1100, 1300)
	inner, _ := NewTimeInterval(1000, 1030)

	assert.False(t, morning.Overlaps(noon))
	assert.False(t, noon.Overlaps(morning))
	assert.True(t, morning.Overlaps(inner))
	assert.True(t, inner.Overlaps(morning))
	assert.True(t, morning.Overlaps(morning))
}

func TestWeekdays(t *testing.T) {
	g := NewWithT(t)

	g.Expect(ParseWeekdays("531x9 3")).To(Equal([]Weekday{Monday, Wednesday, Friday}))
	g.Expect(ParseWeekdays("")).To(BeEmpty())
	g.Expect(Sunday.Abbreviation()).To(Equal("Sun"))
	g.Expect(Thursday.String()).To(Equal("Thursday"))

	day, err := WeekdayFromCode(2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(day).To(Equal(Tuesday))

	_, err = WeekdayFromCode(8)
	g.Expect(err).To(MatchError(ErrInvalidWeekday))
	_, err = WeekdayFromCode(0)
	g.Expect(err).To(MatchError(ErrInvalidWeekday))
}

func TestProfessorValidation(t *testing.T) {
	_, err := NewProfessor("Ana", "Lopez", 10.5)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = NewProfessor("Ana", "Lopez", -0.1)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = NewProfessor(" ", "Lopez", 5)
	assert.ErrorIs(t, err, ErrMissingField)

	professor, err := NewProfessor("Juan Manuel", "Carballo Jimenez", 8.6)
	require.NoError(t, err)
	assert.Equal(t, "Juan Manuel Carballo Jimenez", professor.FullName())
	assert.True(t, professor.Matches("carballo"))
	assert.True(t, professor.Matches("Juan Manuel"))
	assert.False(t, professor.Matches("Erika"))
	assert.False(t, professor.Matches("  "))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "ANDRES CORTES DAVALOS", NormalizeName("  Andrés   Cortés\tDávalos "))
	assert.Equal(t, "PENA NUNEZ", NormalizeName("peña núñez"))
	assert.True(t, SameName("José Pérez", "JOSE  PEREZ"))
	assert.False(t, SameName("José Pérez", "José Pereira"))
}

func TestSectionScheduleIsSortedAndAccumulates(t *testing.T) {
	// Arrange
	professor, _ := NewProfessor("Ana", "Lopez", 8)
	late, _ := NewTimeInterval(1400, 1500)
	early, _ := NewTimeInterval(800, 900)

	// Act
	section, err := NewSection(professor, "CALCULO", "1A", []Block{
		{Day: Monday, Interval: late},
		{Day: Monday, Interval: early},
		{Day: Friday, Interval: early},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []TimeInterval{early, late}, section.Intervals(Monday))
	assert.Equal(t, []Weekday{Monday, Friday}, section.Days())
	assert.Equal(t, 180, section.TotalMinutes())
	assert.Equal(t, "CALCULO_1A_Ana Lopez", section.ID())
	assert.Equal(t, 8.0, section.Rating())
}

func TestSectionValidation(t *testing.T) {
	professor, _ := NewProfessor("Ana", "Lopez", 8)
	interval, _ := NewTimeInterval(800, 900)

	_, err := NewSection(professor, "", "1A", nil)
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = NewSection(professor, "CALCULO", "", nil)
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = NewSection(Professor{}, "CALCULO", "1A", nil)
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = NewSection(professor, "CALCULO", "1A", []Block{{Day: Weekday(9), Interval: interval}})
	assert.ErrorIs(t, err, ErrInvalidWeekday)
	_, err = NewSection(professor, "CALCULO", "1A", []Block{{Day: Monday}})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestSectionIsNotMutableThroughAccessors(t *testing.T) {
	section := newTestSection(t, "CALCULO", "1A", "Ana", 8, "1", "0800-0900")

	section.Intervals(Monday)[0] = TimeInterval{}
	schedule := section.Schedule()
	delete(schedule, Monday)

	assert.Equal(t, 800, section.Intervals(Monday)[0].Start())
	assert.Len(t, section.Schedule(), 1)
}

func TestCloneToGroup(t *testing.T) {
	original := newTestSection(t, "CALCULO", "1A", "Ana", 8, "13", "0800-0900")

	clone := CloneToGroup(original, "TARGET")
	clone.schedule[Monday][0] = TimeInterval{start: 100, end: 200}

	assert.Equal(t, "TARGET", clone.Group())
	assert.Equal(t, "1A", original.Group())
	assert.Equal(t, original.Subject(), clone.Subject())
	assert.Equal(t, 800, original.Intervals(Monday)[0].Start())
}

func TestConflicts(t *testing.T) {
	mondayMorning := newTestSection(t, "A", "1", "P1", 8, "1", "0900-1100")
	mondayNoon := newTestSection(t, "B", "1", "P2", 8, "1", "1100-1300")
	mondayOverlap := newTestSection(t, "C", "2", "P3", 8, "13", "1000-1200")
	tuesday := newTestSection(t, "D", "2", "P4", 8, "2", "0900-1100")
	twoBlocks := newTestSection(t, "E", "3", "P5", 8, "4", "0700-0800", "1230-1330")

	assert.False(t, Conflicts(mondayMorning, mondayNoon))
	assert.True(t, Conflicts(mondayMorning, mondayOverlap))
	assert.True(t, Conflicts(mondayOverlap, mondayNoon))
	assert.False(t, Conflicts(mondayMorning, tuesday))
	assert.False(t, Conflicts(twoBlocks, mondayNoon))
	assert.True(t, mondayOverlap.ConflictsWith(mondayMorning))

	assert.True(t, ConflictsWithAny(mondayOverlap, []*Section{tuesday, mondayNoon}))
	assert.False(t, ConflictsWithAny(mondayMorning, []*Section{tuesday, mondayNoon, twoBlocks}))
	assert.False(t, ConflictsWithAny(mondayMorning, nil))
}

func TestNewSelection(t *testing.T) {
	section := newTestSection(t, "CALCULO", "1A", "Ana", 8, "1", "0800-0900")

	_, err := NewSelection(nil, "1A")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = NewSelection(section, "")
	assert.ErrorIs(t, err, ErrMissingField)

	selection, err := NewSelection(CloneToGroup(section, "T"), "1A")
	require.NoError(t, err)
	assert.Equal(t, "CALCULO (from 1A) taught by Ana", selection.Description())
}

func TestCatalogIndices(t *testing.T) {
	g := NewWithT(t)

	// Arrange
	a1 := newTestSection(t, "ALGEBRA", "G1", "P1", 7, "1", "0700-0800")
	b1 := newTestSection(t, "BIOLOGIA", "G1", "P2", 9, "2", "0700-0800")
	a2 := newTestSection(t, "ALGEBRA", "G2", "P3", 9, "3", "0700-0800")
	a3 := newTestSection(t, "ALGEBRA", "G3", "P4", 9, "4", "0700-0800")
	c2 := newTestSection(t, "CALCULO", "G2", "P1", 5, "5", "0700-0800")

	// Act
	catalog, err := NewCatalog([]*Section{a1, b1, a2, a3, c2})

	// Assert
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(catalog.Len()).To(Equal(5))
	g.Expect(catalog.Groups()).To(Equal([]string{"G1", "G2", "G3"}))
	g.Expect(catalog.SubjectNames()).To(Equal([]string{"ALGEBRA", "BIOLOGIA", "CALCULO"}))
	g.Expect(catalog.Professors()).To(Equal([]string{"P1", "P2", "P3", "P4"}))
	g.Expect(catalog.ByGroup("G1")).To(ConsistOf(a1, b1))
	g.Expect(catalog.BySubject("ALGEBRA")).To(Equal([]*Section{a1, a2, a3}))
	g.Expect(catalog.ByGroup("missing")).To(BeEmpty())

	// Descending rating, ties keep source order
	g.Expect(catalog.Options("ALGEBRA")).To(Equal([]*Section{a2, a3, a1}))
	g.Expect(catalog.OptionCount("ALGEBRA")).To(Equal(3))
	best, ok := catalog.BestRating("ALGEBRA")
	g.Expect(ok).To(BeTrue())
	g.Expect(best).To(Equal(9.0))
	_, ok = catalog.BestRating("QUIMICA")
	g.Expect(ok).To(BeFalse())

	g.Expect(catalog.Coverage()).To(Equal(map[string][]string{
		"G1": {"ALGEBRA", "BIOLOGIA"},
		"G2": {"ALGEBRA", "CALCULO"},
		"G3": {"ALGEBRA"},
	}))
}

func TestBestCoverageGroupTieBreaks(t *testing.T) {
	// G1 and G2 offer two subjects each, G2 has more sections
	catalog, err := NewCatalog([]*Section{
		newTestSection(t, "A", "G1", "P1", 7, "1", "0700-0800"),
		newTestSection(t, "B", "G1", "P2", 7, "1", "0800-0900"),
		newTestSection(t, "A", "G2", "P3", 7, "2", "0700-0800"),
		newTestSection(t, "A", "G2", "P4", 7, "3", "0700-0800"),
		newTestSection(t, "C", "G2", "P5", 7, "4", "0700-0800"),
		newTestSection(t, "D", "G3", "P6", 7, "5", "0700-0800"),
	})
	require.NoError(t, err)

	group, ok := catalog.BestCoverageGroup()
	assert.True(t, ok)
	assert.Equal(t, "G2", group)
	assert.Equal(t, []string{"A", "C"}, catalog.RequiredSubjectsForBestGroup())

	empty, err := NewCatalog(nil)
	require.NoError(t, err)
	_, ok = empty.BestCoverageGroup()
	assert.False(t, ok)
	assert.Empty(t, empty.RequiredSubjectsForBestGroup())

	_, err = NewCatalog([]*Section{nil})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestCatalogRejectsDuplicateSections(t *testing.T) {
	// Arrange: same subject, group and professor at different times
	monday := newTestSection(t, "A", "G1", "Ana", 9, "1", "0900-1000")
	tuesday := newTestSection(t, "A", "G1", "Ana", 9, "2", "0900-1000")
	otherGroup := newTestSection(t, "A", "G2", "Ana", 9, "2", "0900-1000")

	// Act
	_, duplicateErr := NewCatalog([]*Section{monday, tuesday})
	catalog, err := NewCatalog([]*Section{monday, otherGroup})

	// Assert
	assert.ErrorIs(t, duplicateErr, ErrDuplicateSection)
	assert.ErrorContains(t, duplicateErr, monday.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
}

func TestCatalogFromJson(t *testing.T) {
	// Arrange
	file := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"sections": [
		{"professorName": "Sandra", "professorLastName": "Diaz Santiago", "rating": 8.4, "subject": "ALGORITMOS", "group": "3BM1",
		 "blocks": [{"days": "14", "ranges": ["1030-1200"]}, {"days": 2, "ranges": ["0830-1000"]}]},
		{"professorName": "Erika", "professorLastName": "Hernandez Rubio", "rating": 6.7, "subject": "BASES DE DATOS", "group": "3BM1",
		 "blocks": [{"days": "235", "ranges": ["0700-0830"]}]}
	]}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	// Act
	catalog, err := CatalogFromJson(file)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	algorithms := catalog.Options("ALGORITMOS")[0]
	assert.Equal(t, "Sandra Diaz Santiago", algorithms.Professor().FullName())
	assert.Equal(t, []Weekday{Monday, Tuesday, Thursday}, algorithms.Days())
	assert.Equal(t, 270, algorithms.TotalMinutes())
}

func TestCatalogFromJsonRejectsInvalidRecords(t *testing.T) {
	scenarios := []struct {
		content  string
		expected error
	}{
		{
			content:  `{"sections": [{"professorName": "A", "rating": 11, "subject": "S", "group": "G", "blocks": []}]}`,
			expected: ErrInvalidRecord,
		},
		{
			content:  `{"sections": [{"professorName": "", "rating": 5, "subject": "S", "group": "G", "blocks": []}]}`,
			expected: ErrInvalidRecord,
		},
		{
			content:  `{"sections": [{"professorName": "A", "rating": 5, "subject": "S", "group": "G", "blocks": [{"days": "1", "ranges": ["0900-0800"]}]}]}`,
			expected: ErrInvalidInterval,
		},
	}

	for _, scenario := range scenarios {
		file := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(file, []byte(scenario.content), 0o644))

		_, err := CatalogFromJson(file)
		assert.ErrorIs(t, err, scenario.expected, scenario.content)
	}

	_, err := CatalogFromJson(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
