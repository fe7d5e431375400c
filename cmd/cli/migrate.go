package cli

import (
	"fmt"
	"log"

	"github.com/ethanmoreau/bikejourney/cmd"
	"github.com/ethanmoreau/bikejourney/internal/config"
	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedFlag bool

// MigrateCmd represents the 'migrate' command
// This command handles database schema creation and updates
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Executes database migrations to create or update tables.",
	Long: `This command connects to the configured database (SQLite)
and executes GORM automatic migrations for the landmark, visitor,
visit, guestbook and analytics tables based on the Go models.

With --seed it also loads the journey's canonical landmarks and a few
sample guestbook entries. Seeding is idempotent: existing landmarks are
left untouched and sample entries are only created into an empty
guestbook.`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// Landmark references are soft (a delete leaves visits and
		// guestbook entries behind), so no foreign key constraints
		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("FATAL: Failed to get underlying SQL database: %v", err)
		}
		defer sqlDB.Close()

		if err := db.AutoMigrate(
			&models.Landmark{},
			&models.Visitor{},
			&models.Visit{},
			&models.GuestbookEntry{},
			&models.Analytics{},
		); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		fmt.Println("Database migrations executed successfully.")

		if seedFlag {
			if err := seedDatabase(db); err != nil {
				log.Fatalf("Failed to seed database: %v", err)
			}
			fmt.Println("Seed data loaded.")
		}
	},
}

func init() {
	MigrateCmd.Flags().BoolVar(&seedFlag, "seed", false, "Load the journey's landmarks and sample guestbook entries")

	cmd.RootCmd.AddCommand(MigrateCmd)
}

// seedDatabase loads the five stops of the journey and, into an empty
// guestbook, three approved sample entries.
func seedDatabase(db *gorm.DB) error {
	landmarks := []models.Landmark{
		{
			ID:    "movie-theater",
			Title: "Movie Theater",
			Description: "This is where my passion for storytelling began. Growing up, I spent countless " +
				"hours here, absorbing narratives that would later influence my approach to creating " +
				"immersive digital experiences.",
			Details: "Just like films transport audiences to different worlds, I strive to create web " +
				"experiences that captivate and engage users from the first interaction.",
			SplineObjectName: "MovieTheater_Stop",
			Position:         &models.Position{X: 0, Y: 0, Z: 0},
			IsActive:         true,
		},
		{
			ID:    "soccer-pitch",
			Title: "Soccer Pitch",
			Description: "Team collaboration and strategic thinking were forged on this field. Every match " +
				"taught me about coordination, timing, and the importance of each player's role.",
			Details: "In development, like in soccer, success comes from understanding how individual " +
				"components work together to create something greater than the sum of their parts.",
			SplineObjectName: "SoccerPitch_Stop",
			Position:         &models.Position{X: 10, Y: 0, Z: 0},
			IsActive:         true,
		},
		{
			ID:    "school",
			Title: "Elementary School",
			Description: "Where curiosity was nurtured and the foundation of learning was built. Every " +
				"classroom held a new adventure, every teacher a mentor.",
			Details: "The structured learning environment taught me discipline and the importance of " +
				"continuous growth - principles I apply to every project I undertake.",
			SplineObjectName: "School_Stop",
			Position:         &models.Position{X: -10, Y: 0, Z: 0},
			IsActive:         true,
		},
		{
			ID:    "library",
			Title: "Public Library",
			Description: "A sanctuary of knowledge where I discovered the power of information and the joy " +
				"of research. Countless hours spent exploring different worlds through books.",
			Details: "The library taught me that every problem has been solved before, and the key is " +
				"knowing where to look for the solution.",
			SplineObjectName: "Library_Stop",
			Position:         &models.Position{X: 0, Y: 0, Z: 10},
			IsActive:         true,
		},
		{
			ID:    "park",
			Title: "Community Park",
			Description: "A place of balance between nature and community. Where I learned the importance " +
				"of taking breaks and finding inspiration in the world around me.",
			Details: "Just as a park provides a natural pause in urban life, I believe in creating digital " +
				"experiences that give users moments of reflection and joy.",
			SplineObjectName: "Park_Stop",
			Position:         &models.Position{X: 5, Y: 0, Z: -5},
			IsActive:         true,
		},
	}

	// Existing landmarks keep whatever edits the admin made
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&landmarks).Error; err != nil {
		return fmt.Errorf("failed to seed landmarks: %w", err)
	}

	var entryCount int64
	if err := db.Model(&models.GuestbookEntry{}).Count(&entryCount).Error; err != nil {
		return fmt.Errorf("failed to inspect guestbook: %w", err)
	}
	if entryCount > 0 {
		return nil
	}

	entries := []models.GuestbookEntry{
		{
			ID:         uuid.NewString(),
			LandmarkID: "movie-theater",
			Name:       "Sarah M.",
			Message:    "Love the storytelling approach! This really captures the essence of your journey.",
			IsApproved: true,
		},
		{
			ID:         uuid.NewString(),
			LandmarkID: "soccer-pitch",
			Name:       "Mike R.",
			Message:    "The team collaboration metaphor really resonates. Great work!",
			IsApproved: true,
		},
		{
			ID:         uuid.NewString(),
			LandmarkID: "library",
			Name:       "Emma L.",
			Message:    "The research mindset is so important in development. Well said!",
			IsApproved: true,
		},
	}
	if err := db.Create(&entries).Error; err != nil {
		return fmt.Errorf("failed to seed guestbook entries: %w", err)
	}
	return nil
}
