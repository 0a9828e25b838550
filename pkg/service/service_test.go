package service

import (
	"testing"

	"github.com/limaJavier/scheduling/pkg/builder"
	"github.com/limaJavier/scheduling/pkg/cache"
	"github.com/limaJavier/scheduling/pkg/evaluation"
	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogFile = "../../testdata/catalog.json"

func newTestService(t *testing.T, scheduleCache *cache.ScheduleCache) *ScheduleService {
	t.Helper()
	catalog, err := model.CatalogFromJson(catalogFile)
	require.NoError(t, err)
	service, err := NewScheduleService(catalog, scheduleCache, nil, Config{})
	require.NoError(t, err)
	return service
}

func professors(schedule Schedule) map[string]string {
	return lo.SliceToMap(schedule.Selections, func(selection model.Selection) (string, string) {
		return selection.Assigned.Subject(), selection.Assigned.Professor().FullName()
	})
}

func TestCreateUsesDefaultsAndCache(t *testing.T) {
	// Arrange
	service := newTestService(t, cache.New())

	// Act
	first, err := service.Create("3BM1", "", "")
	require.NoError(t, err)
	second, err := service.Create("3BM1", "Weighted", "MaxCoverage")
	require.NoError(t, err)

	// Assert
	assert.True(t, first.Feasible())
	assert.Equal(t, evaluation.Weighted, first.Strategy)
	assert.Equal(t, builder.MaxCoverage, first.Algorithm)
	assert.Equal(t, first, second)
	assert.Equal(t, map[string]string{
		"ALGORITMOS":     "Sandra Díaz Santiago",
		"BASES DE DATOS": "Marta Solís",
		"PROBABILIDAD":   "Eva Ruiz",
		"REDES":          "Ana Gómez",
	}, professors(first))
	assert.Greater(t, first.Score, 0.0)

	total, valid := service.CacheStats()
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, valid)

	service.ClearCache()
	total, _ = service.CacheStats()
	assert.Zero(t, total)
}

func TestCreateRejectsUnknownNames(t *testing.T) {
	service := newTestService(t, nil)

	_, err := service.Create("3BM1", "median", "")
	assert.ErrorIs(t, err, evaluation.ErrUnknownStrategy)

	_, err = service.Create("3BM1", "", "sat")
	assert.ErrorIs(t, err, builder.ErrUnknownBuilder)

	_, err = service.Create("", "", "")
	assert.ErrorIs(t, err, builder.ErrEmptyTargetGroup)
}

func TestCreateWithoutCache(t *testing.T) {
	service := newTestService(t, nil)

	schedule, err := service.Create("3BM9", "harmonic", "astar")

	require.NoError(t, err)
	assert.Len(t, schedule.Selections, 4)
	for _, selection := range schedule.Selections {
		assert.Equal(t, "3BM9", selection.Assigned.Group())
	}
	total, valid := service.CacheStats()
	assert.Zero(t, total)
	assert.Zero(t, valid)
}

func TestCreatePinned(t *testing.T) {
	// Arrange
	service := newTestService(t, cache.New())

	// Act
	schedule, err := service.CreatePinned("3BM1", map[string]string{" PROBABILIDAD ": "luis   perez"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, builder.Pinned, schedule.Algorithm)
	assert.Equal(t, map[string]string{
		"ALGORITMOS":     "Raúl Ortiz",
		"BASES DE DATOS": "Jorge Luna",
		"PROBABILIDAD":   "Luis Pérez",
		"REDES":          "Ana Gómez",
	}, professors(schedule))
}

func TestCreatePinnedSharesCacheAcrossNameSpellings(t *testing.T) {
	// Arrange
	service := newTestService(t, cache.New())

	// Act
	first, err := service.CreatePinned("3BM1", map[string]string{"PROBABILIDAD": "luis perez"})
	require.NoError(t, err)
	second, err := service.CreatePinned("3BM1", map[string]string{"PROBABILIDAD": "LUIS  PÉREZ"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first, second)
	assert.Equal(t, "Luis Pérez", professors(second)["PROBABILIDAD"])
	total, _ := service.CacheStats()
	assert.Equal(t, 1, total)
}

func TestCreatePinnedInfeasible(t *testing.T) {
	service := newTestService(t, cache.New())

	schedule, err := service.CreatePinned("3BM1", map[string]string{"REDES": "Nobody"})

	require.NoError(t, err)
	assert.False(t, schedule.Feasible())
	assert.Zero(t, schedule.Score)
}

func TestCompare(t *testing.T) {
	g := NewWithT(t)
	service := newTestService(t, nil)

	comparison, err := service.Compare("3BM1")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(uuid.Validate(comparison.RunID)).To(Succeed())
	g.Expect(comparison.Rows).To(HaveLen(len(builder.Names())))
	for _, row := range comparison.Rows {
		g.Expect(row.Valid).To(BeTrue(), row.Algorithm)
		g.Expect(row.Selections).To(Equal(4), row.Algorithm)
	}
}

func TestCatalogStatsAndValidate(t *testing.T) {
	g := NewWithT(t)
	service := newTestService(t, nil)

	stats := service.CatalogStats()
	g.Expect(stats.Sections).To(Equal(9))
	g.Expect(stats.Groups).To(Equal(3))
	g.Expect(stats.Subjects).To(Equal(5))
	g.Expect(stats.Professors).To(Equal(9))
	g.Expect(stats.BestCoverageGroup).To(Equal("3BM1"))
	g.Expect(stats.Coverage).To(HaveKeyWithValue("3BM3", 2))

	result := service.Validate()
	g.Expect(result.Messages()).To(ConsistOf("conflict in 3BM1: ALGORITMOS <-> PROBABILIDAD"))
}

func TestNewScheduleServiceRequiresCatalog(t *testing.T) {
	_, err := NewScheduleService(nil, nil, nil, Config{})
	assert.ErrorIs(t, err, ErrMissingCatalog)
}
