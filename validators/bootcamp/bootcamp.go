package bootcampValidator

import (
	"devcamper/middleware"
	"devcamper/models"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	urlRe   = regexp.MustCompile(`^https?://[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_\+.~#?&/=]*$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// CreateBootcamp validator middleware. The careers enum holds values
// with spaces, so the check is explicit rather than tag based.
func CreateBootcamp() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.Bootcamp)
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Please add a name"
		} else if len(reqData.Name) > 50 {
			errors["name"] = "Name cannot be longer than 50 characters"
		}

		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Please add a description"
		} else if len(reqData.Description) > 500 {
			errors["description"] = "Description cannot be longer than 500 characters"
		}

		if strings.TrimSpace(reqData.Address) == "" {
			errors["address"] = "Please add an address"
		}

		if len(reqData.Careers) == 0 {
			errors["careers"] = "Please add at least one career"
		} else {
			for _, career := range reqData.Careers {
				if !validCareer(career) {
					errors["careers"] = "Invalid career: " + career
					break
				}
			}
		}

		if reqData.Website != "" && !urlRe.MatchString(reqData.Website) {
			errors["website"] = "Please use a valid URL with HTTP or HTTPS"
		}

		if reqData.Email != "" && !emailRe.MatchString(reqData.Email) {
			errors["email"] = "Please add a valid email"
		}

		if reqData.Phone != "" && len(reqData.Phone) > 20 {
			errors["phone"] = "Phone number cannot be longer than 20 characters"
		}

		if reqData.AverageRating != 0 && (reqData.AverageRating < 1 || reqData.AverageRating > 10) {
			errors["averageRating"] = "Rating must be between 1 and 10"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBootcamp", reqData)
		return c.Next()
	}
}

func validCareer(career string) bool {
	for _, valid := range models.ValidCareers {
		if career == valid {
			return true
		}
	}
	return false
}
