package main

import (
	"devcamper/config"
	"devcamper/database"
	"devcamper/models"
	"devcamper/utils"
	"encoding/json"
	"flag"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// seedUser mirrors models.User but keeps the plaintext password the
// fixtures carry; it gets hashed on import.
type seedUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Seeds the database from the JSON fixtures in _data/.
//
//	go run ./scripts -import
//	go run ./scripts -destroy
func main() {
	importData := flag.Bool("import", false, "import fixture data")
	destroyData := flag.Bool("destroy", false, "delete all data")
	flag.Parse()

	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	switch {
	case *importData:
		var seedUsers []seedUser
		loadJSON("_data/users.json", &seedUsers)
		for _, su := range seedUsers {
			hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), config.AppConfig.SaltRound)
			if err != nil {
				log.Fatalf("Failed to hash password for %s: %v", su.Email, err)
			}
			user := models.User{Name: su.Name, Email: su.Email, Role: su.Role, Password: string(hashed)}
			if err := db.Create(&user).Error; err != nil {
				log.Fatalf("Failed to import user %s: %v", su.Email, err)
			}
		}

		var bootcamps []models.Bootcamp
		loadJSON("_data/bootcamps.json", &bootcamps)
		for i := range bootcamps {
			bootcamps[i].Slug = utils.Slugify(bootcamps[i].Name)
		}
		if err := db.Create(&bootcamps).Error; err != nil {
			log.Fatalf("Failed to import bootcamps: %v", err)
		}

		var courses []models.Course
		loadJSON("_data/courses.json", &courses)
		if err := db.Create(&courses).Error; err != nil {
			log.Fatalf("Failed to import courses: %v", err)
		}

		log.Println("Data imported.")
	case *destroyData:
		db.Unscoped().Where("1 = 1").Delete(&models.Course{})
		db.Unscoped().Where("1 = 1").Delete(&models.Bootcamp{})
		db.Unscoped().Where("1 = 1").Delete(&models.User{})
		log.Println("Data destroyed.")
	default:
		log.Fatal("Pass -import or -destroy")
	}
}

func loadJSON(path string, dest interface{}) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
}
