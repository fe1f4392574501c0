package utils

import (
	"devcamper/models"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// parseFor runs ParseListQuery against a real fiber context for the
// given query string.
func parseFor(t *testing.T, queryString string) *ListQuery {
	t.Helper()

	app := fiber.New()
	var parsed *ListQuery
	app.Get("/t", func(c *fiber.Ctx) error {
		parsed = ParseListQuery(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/t?"+queryString, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, parsed)

	return parsed
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Bootcamp{}, &models.Course{}))

	return db
}

func seedCourses(t *testing.T, db *gorm.DB, tuitions ...float64) {
	t.Helper()
	for i, tuition := range tuitions {
		course := models.Course{
			Title:        fmt.Sprintf("Course %d", i+1),
			Weeks:        "8",
			Tuition:      tuition,
			MinimumSkill: models.SkillBeginner,
			BootcampID:   1,
			UserID:       1,
		}
		require.NoError(t, db.Create(&course).Error)
	}
}

func TestParseListQueryDefaults(t *testing.T) {
	q := parseFor(t, "")

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Empty(t, q.filters)
	assert.Empty(t, q.orders)
	assert.Empty(t, q.selects)
}

func TestParseListQueryFailsOpenOnBadPagination(t *testing.T) {
	q := parseFor(t, "page=abc&limit=-3")

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 25, q.Limit)
}

func TestParseListQueryDirectives(t *testing.T) {
	q := parseFor(t, "select=title,averageCost&sort=-tuition,title&page=2&limit=10")

	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, []string{"title", "average_cost"}, q.selects)
	assert.Equal(t, []string{"tuition desc", "title"}, q.orders)
}

func TestRunAppliesComparisonFilters(t *testing.T) {
	db := openTestDB(t)
	seedCourses(t, db, 5000, 10000, 12000, 15000)

	q := parseFor(t, "tuition[gte]=10000&sort=-tuition&limit=5")

	var courses []models.Course
	total, _, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	require.Len(t, courses, 3)
	assert.Equal(t, float64(15000), courses[0].Tuition)
	assert.Equal(t, float64(12000), courses[1].Tuition)
	assert.Equal(t, float64(10000), courses[2].Tuition)
}

func TestRunInOperator(t *testing.T) {
	db := openTestDB(t)
	seedCourses(t, db, 5000, 10000, 12000)

	q := parseFor(t, "tuition[in]=5000,12000")

	var courses []models.Course
	total, _, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
}

func TestRunEqualityFilter(t *testing.T) {
	db := openTestDB(t)
	seedCourses(t, db, 5000, 10000)
	require.NoError(t, db.Model(&models.Course{}).Where("tuition = ?", 10000).
		Update("minimum_skill", models.SkillAdvanced).Error)

	q := parseFor(t, "minimumSkill=advanced")

	var courses []models.Course
	total, _, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, courses, 1)
	assert.Equal(t, models.SkillAdvanced, courses[0].MinimumSkill)
}

func TestRunEqualityOnTextColumn(t *testing.T) {
	db := openTestDB(t)
	// seedCourses stores weeks as the string "8".
	seedCourses(t, db, 8000)

	q := parseFor(t, "weeks=8")

	var courses []models.Course
	total, _, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
}

func TestRunInOperatorOnTextColumn(t *testing.T) {
	db := openTestDB(t)
	seedCourses(t, db, 8000, 10000)
	require.NoError(t, db.Model(&models.Course{}).Where("tuition = ?", 10000).
		Update("weeks", "12").Error)

	q := parseFor(t, "weeks[in]=12,16")

	var courses []models.Course
	total, _, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
}

func TestRunBooleanEqualityFilter(t *testing.T) {
	db := openTestDB(t)
	seedCourses(t, db, 1000, 2000)
	require.NoError(t, db.Model(&models.Course{}).Where("tuition = ?", 2000).
		Update("scholarship_available", true).Error)

	q := parseFor(t, "scholarshipAvailable=true")

	var courses []models.Course
	total, _, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, courses, 1)
	assert.Equal(t, float64(2000), courses[0].Tuition)
}

func TestRunDefaultSortIsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		course := models.Course{
			Title:        title,
			Weeks:        "8",
			Tuition:      1000,
			MinimumSkill: models.SkillBeginner,
			BootcampID:   1,
			UserID:       1,
		}
		course.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&course).Error)
	}

	q := parseFor(t, "")

	var courses []models.Course
	_, _, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)

	require.Len(t, courses, 3)
	assert.Equal(t, "Newest", courses[0].Title)
	assert.Equal(t, "Middle", courses[1].Title)
	assert.Equal(t, "Oldest", courses[2].Title)
}

func TestRunPaginationWindow(t *testing.T) {
	db := openTestDB(t)
	tuitions := make([]float64, 0, 30)
	for i := 1; i <= 30; i++ {
		tuitions = append(tuitions, float64(i*1000))
	}
	seedCourses(t, db, tuitions...)

	q := parseFor(t, "page=2&limit=10&sort=tuition")

	var courses []models.Course
	total, pagination, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)

	assert.Equal(t, int64(30), total)
	require.Len(t, courses, 10)
	// Page 2 of the sorted order holds rows 11-20.
	assert.Equal(t, float64(11000), courses[0].Tuition)
	assert.Equal(t, float64(20000), courses[9].Tuition)

	require.NotNil(t, pagination.Next)
	assert.Equal(t, 3, pagination.Next.Page)
	require.NotNil(t, pagination.Prev)
	assert.Equal(t, 1, pagination.Prev.Page)
}

func TestRunPaginationBoundaries(t *testing.T) {
	db := openTestDB(t)
	seedCourses(t, db, 1000, 2000, 3000)

	q := parseFor(t, "limit=25")
	var courses []models.Course
	_, pagination, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)
	assert.Nil(t, pagination.Next)
	assert.Nil(t, pagination.Prev)
}

func TestRunCountsFilteredSetNotWholeTable(t *testing.T) {
	db := openTestDB(t)
	seedCourses(t, db, 1000, 2000, 3000, 40000)

	// One row matches but the table holds four; next must not appear.
	q := parseFor(t, "tuition[gte]=40000&limit=1")

	var courses []models.Course
	total, pagination, err := q.Run(db, &models.Course{}, &courses)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	assert.Nil(t, pagination.Next)
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"tuition":       "tuition",
		"averageCost":   "average_cost",
		"jobAssistance": "job_assistance",
		"name":          "name",
	}
	for in, want := range cases {
		assert.Equal(t, want, camelToSnake(in))
	}
}
