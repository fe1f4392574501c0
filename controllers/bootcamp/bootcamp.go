package bootcampController

import (
	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"
	"devcamper/utils"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetBootcamps lists bootcamps through the generic query builder and
// expands each bootcamp's courses.
func GetBootcamps(c *fiber.Ctx) error {
	query := utils.ParseListQuery(c)

	var bootcamps []models.Bootcamp
	_, pagination, err := query.Run(database.Database.Db, &models.Bootcamp{}, &bootcamps, "Courses")
	if err != nil {
		return err
	}

	return middleware.ListResponse(c, len(bootcamps), pagination, bootcamps)
}

// GetBootcamp returns a single bootcamp by id
func GetBootcamp(c *fiber.Ctx) error {
	bootcamp, err := findBootcamp(c.Params("id"))
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, bootcamp)
}

// CreateBootcamp geocodes the submitted address into a location and
// stores the listing. A non-admin user may publish only one bootcamp.
func CreateBootcamp(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	db := database.Database.Db

	// One published bootcamp per non-admin user. Best effort: relies on
	// per-row atomicity, not a transaction.
	if !user.IsAdmin() {
		var existing models.Bootcamp
		if err := db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("The user with ID %d has already published a bootcamp", user.ID))
		}
	}

	reqData, ok := c.Locals("validatedBootcamp").(*models.Bootcamp)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	location, err := utils.Geocode(reqData.Address)
	if err != nil {
		return err
	}

	reqData.Location = *location
	reqData.Address = "" // consumed by geocoding, never persisted
	reqData.Slug = utils.Slugify(reqData.Name)
	reqData.UserID = user.ID

	if err := db.Create(reqData).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, reqData)
}

// Wire names a PUT may touch, mapped to their columns. Ownership, the
// slug and the geocoded location stay server controlled.
var updatableBootcampColumns = map[string]string{
	"name":          "name",
	"description":   "description",
	"website":       "website",
	"phone":         "phone",
	"email":         "email",
	"careers":       "careers",
	"housing":       "housing",
	"jobAssistance": "job_assistance",
	"jobGuarantee":  "job_guarantee",
	"acceptGi":      "accept_gi",
	"averageRating": "average_rating",
}

// UpdateBootcamp applies partial updates; owner or admin only. Only the
// fields present in the body are written, so booleans can be set false.
func UpdateBootcamp(c *fiber.Ctx) error {
	bootcamp, err := findBootcamp(c.Params("id"))
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if !middleware.OwnerOrAdmin(user, bootcamp.UserID) {
		return fiber.NewError(fiber.StatusUnauthorized,
			fmt.Sprintf("User %d is not authorized to update this bootcamp", user.ID))
	}

	input := new(models.Bootcamp)
	if err := c.BodyParser(input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var provided map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &provided); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	columns := make([]string, 0, len(provided))
	for key := range provided {
		if column, ok := updatableBootcampColumns[key]; ok {
			columns = append(columns, column)
		}
	}
	if input.Name != "" {
		input.Slug = utils.Slugify(input.Name)
		columns = append(columns, "slug")
	}

	if len(columns) > 0 {
		if err := database.Database.Db.Model(bootcamp).Select(columns).Updates(input).Error; err != nil {
			return err
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, bootcamp)
}

// DeleteBootcamp removes a bootcamp and cascades the deletion of its
// courses as an explicit operation.
func DeleteBootcamp(c *fiber.Ctx) error {
	bootcamp, err := findBootcamp(c.Params("id"))
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if !middleware.OwnerOrAdmin(user, bootcamp.UserID) {
		return fiber.NewError(fiber.StatusUnauthorized,
			fmt.Sprintf("User %d is not authorized to delete this bootcamp", user.ID))
	}

	db := database.Database.Db

	if err := db.Where("bootcamp_id = ?", bootcamp.ID).Delete(&models.Course{}).Error; err != nil {
		return err
	}
	if err := db.Delete(bootcamp).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{})
}

// UploadBootcampPhoto stores a validated image as photo_<id>.<ext>
func UploadBootcampPhoto(c *fiber.Ctx) error {
	bootcamp, err := findBootcamp(c.Params("id"))
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if !middleware.OwnerOrAdmin(user, bootcamp.UserID) {
		return fiber.NewError(fiber.StatusUnauthorized,
			fmt.Sprintf("User %d is not authorized to update this bootcamp", user.ID))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please upload a file")
	}

	filename, err := utils.SaveBootcampPhoto(file, bootcamp.ID)
	if err != nil {
		return err
	}

	if err := database.Database.Db.Model(bootcamp).Update("photo", filename).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, bootcamp)
}

// GetBootcampsInRadius geocodes a zipcode and returns the bootcamps
// whose location lies within the given distance (miles).
func GetBootcampsInRadius(c *fiber.Ctx) error {
	zipcode := c.Params("zipcode")

	distance, err := strconv.ParseFloat(c.Params("distance"), 64)
	if err != nil || distance <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Distance must be a positive number")
	}

	location, err := utils.Geocode(zipcode)
	if err != nil {
		return err
	}

	// Central angle of the search circle: distance over the earth radius.
	radius := distance / utils.EarthRadiusMiles

	var bootcamps []models.Bootcamp
	if err := database.Database.Db.Find(&bootcamps).Error; err != nil {
		return err
	}

	within := make([]models.Bootcamp, 0)
	for _, b := range bootcamps {
		angle := utils.CentralAngle(location.Latitude, location.Longitude,
			b.Location.Latitude, b.Location.Longitude)
		if angle <= radius {
			within = append(within, b)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(within),
		"data":    within,
	})
}

func findBootcamp(idParam string) (*models.Bootcamp, error) {
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("Bootcamp not found with id of %s", idParam))
	}

	var bootcamp models.Bootcamp
	if err := database.Database.Db.First(&bootcamp, id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("Bootcamp not found with id of %s", idParam))
	}

	return &bootcamp, nil
}
