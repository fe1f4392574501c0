package courseController

import (
	"database/sql"
	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"
	"devcamper/utils"
	courseValidator "devcamper/validators/course"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCourses lists courses: nested under a bootcamp it returns that
// bootcamp's courses, top level it goes through the query builder and
// expands the owning bootcamp.
func GetCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	if bootcampParam := c.Params("bootcampId"); bootcampParam != "" {
		bootcampID, err := strconv.Atoi(bootcampParam)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound,
				fmt.Sprintf("Bootcamp not found with id of %s", bootcampParam))
		}

		var courses []models.Course
		if err := db.Where("bootcamp_id = ?", bootcampID).Find(&courses).Error; err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"count":   len(courses),
			"data":    courses,
		})
	}

	query := utils.ParseListQuery(c)

	var courses []models.Course
	_, pagination, err := query.Run(db, &models.Course{}, &courses, "Bootcamp")
	if err != nil {
		return err
	}

	return middleware.ListResponse(c, len(courses), pagination, courses)
}

// GetCourse returns a single course with its bootcamp's name and description
func GetCourse(c *fiber.Ctx) error {
	idParam := c.Params("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("Course not found with id of %s", idParam))
	}

	var course models.Course
	err = database.Database.Db.
		Preload("Bootcamp", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "description")
		}).
		First(&course, id).Error
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("Course not found with id of %s", idParam))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, course)
}

// CreateCourse adds a course to a bootcamp. Ownership is delegated to
// the parent bootcamp, and its average cost is recomputed afterwards.
func CreateCourse(c *fiber.Ctx) error {
	db := database.Database.Db
	user := middleware.CurrentUser(c)

	bootcampParam := c.Params("bootcampId")
	bootcampID, err := strconv.Atoi(bootcampParam)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("Bootcamp not found with id of %s", bootcampParam))
	}

	var bootcamp models.Bootcamp
	if err := db.First(&bootcamp, bootcampID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("Bootcamp not found with id of %s", bootcampParam))
	}

	if !middleware.OwnerOrAdmin(user, bootcamp.UserID) {
		return fiber.NewError(fiber.StatusUnauthorized,
			fmt.Sprintf("User %d is not authorized to add a course to bootcamp %d", user.ID, bootcamp.ID))
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	course := models.Course{
		Title:                reqData.Title,
		Description:          reqData.Description,
		Weeks:                reqData.Weeks,
		Tuition:              reqData.Tuition,
		MinimumSkill:         reqData.MinimumSkill,
		ScholarshipAvailable: reqData.ScholarshipAvailable,
		BootcampID:           bootcamp.ID,
		UserID:               user.ID,
	}

	if err := db.Create(&course).Error; err != nil {
		return err
	}

	if err := recomputeAverageCost(db, bootcamp.ID); err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, course)
}

// Wire names a PUT may touch, mapped to their columns. A course never
// changes bootcamp or owner.
var updatableCourseColumns = map[string]string{
	"title":                "title",
	"description":          "description",
	"weeks":                "weeks",
	"tuition":              "tuition",
	"minimumSkill":         "minimum_skill",
	"scholarshipAvailable": "scholarship_available",
}

// UpdateCourse applies partial updates; owner of the parent bootcamp or
// admin. Only the fields present in the body are written, so booleans
// can be set false.
func UpdateCourse(c *fiber.Ctx) error {
	course, bootcamp, err := findCourseWithBootcamp(c.Params("id"))
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if !middleware.OwnerOrAdmin(user, bootcamp.UserID) {
		return fiber.NewError(fiber.StatusUnauthorized,
			fmt.Sprintf("User %d is not authorized to update course %d", user.ID, course.ID))
	}

	input := new(models.Course)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var provided map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &provided); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	columns := make([]string, 0, len(provided))
	for key := range provided {
		if column, ok := updatableCourseColumns[key]; ok {
			columns = append(columns, column)
		}
	}

	if len(columns) > 0 {
		if err := database.Database.Db.Model(course).Select(columns).Updates(input).Error; err != nil {
			return err
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, course)
}

// DeleteCourse removes a course and recomputes the parent average cost
func DeleteCourse(c *fiber.Ctx) error {
	course, bootcamp, err := findCourseWithBootcamp(c.Params("id"))
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if !middleware.OwnerOrAdmin(user, bootcamp.UserID) {
		return fiber.NewError(fiber.StatusUnauthorized,
			fmt.Sprintf("User %d is not authorized to delete course %d", user.ID, course.ID))
	}

	db := database.Database.Db
	if err := db.Delete(course).Error; err != nil {
		return err
	}

	if err := recomputeAverageCost(db, bootcamp.ID); err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{})
}

// recomputeAverageCost sets the bootcamp's average cost to the ceiling
// of the mean tuition over its remaining courses, zero when none are
// left. Best effort: not transactional with the triggering write.
func recomputeAverageCost(db *gorm.DB, bootcampID uint) error {
	var avg sql.NullFloat64
	err := db.Model(&models.Course{}).
		Where("bootcamp_id = ?", bootcampID).
		Select("AVG(tuition)").
		Scan(&avg).Error
	if err != nil {
		return err
	}

	cost := 0
	if avg.Valid {
		cost = int(math.Ceil(avg.Float64))
	}

	return db.Model(&models.Bootcamp{}).
		Where("id = ?", bootcampID).
		Update("average_cost", cost).Error
}

func findCourseWithBootcamp(idParam string) (*models.Course, *models.Bootcamp, error) {
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("Course not found with id of %s", idParam))
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("Course not found with id of %s", idParam))
	}

	var bootcamp models.Bootcamp
	if err := db.First(&bootcamp, course.BootcampID).Error; err != nil {
		return nil, nil, err
	}

	return &course, &bootcamp, nil
}
