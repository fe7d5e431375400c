package cli

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ethanmoreau/bikejourney/cmd"
	"github.com/ethanmoreau/bikejourney/internal/config"
	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/repository"
	"github.com/ethanmoreau/bikejourney/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	landmarkIDFlag       string
	landmarkTitleFlag    string
	landmarkDescFlag     string
	landmarkDetailsFlag  string
	landmarkObjectFlag   string
	landmarkPositionFlag string
)

// CreateLandmarkCmd représente la commande 'create-landmark'
var CreateLandmarkCmd = &cobra.Command{
	Use:   "create-landmark",
	Short: "Enregistre un nouveau landmark dans le parcours.",
	Long: `Cette commande enregistre un landmark (arrêt du parcours 3D) avec son
texte descriptif et le nom de l'objet correspondant dans la scène.

Exemple:
  bikejourney create-landmark --id="movie-theater" --title="Movie Theater" \
    --spline-object="MovieTheater_Stop" --position="0,0,0"`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		position, err := parsePosition(landmarkPositionFlag)
		if err != nil {
			fmt.Printf("Error: invalid --position: %v\n", err)
			os.Exit(1)
		}

		// Charger la configuration
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("FATAL: Échec de l'obtention de la base de données SQL sous-jacente: %v", err)
		}
		defer sqlDB.Close()

		// Initialiser les repositories et services nécessaires
		landmarkRepo := repository.NewLandmarkRepository(db)
		landmarkService := services.NewLandmarkService(landmarkRepo)

		landmark, err := landmarkService.Create(landmarkIDFlag, services.LandmarkInput{
			Title:            landmarkTitleFlag,
			Description:      landmarkDescFlag,
			Details:          landmarkDetailsFlag,
			SplineObjectName: landmarkObjectFlag,
			Position:         position,
		})
		if err != nil {
			log.Fatalf("Failed to create landmark: %v", err)
		}

		fmt.Printf("Landmark créé avec succès:\n")
		fmt.Printf("ID: %s\n", landmark.ID)
		fmt.Printf("Titre: %s\n", landmark.Title)
		fmt.Printf("Objet scène: %s\n", landmark.SplineObjectName)
	},
}

// parsePosition lit une position "x,y,z"; une chaîne vide donne nil
// (le landmark n'a alors pas de position imposée).
func parsePosition(raw string) (*models.Position, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected x,y,z, got %q", raw)
	}
	coords := make([]float64, 3)
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		coords[i] = value
	}
	return &models.Position{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func init() {
	CreateLandmarkCmd.Flags().StringVar(&landmarkIDFlag, "id", "", "Slug id for the landmark (generated when omitted)")
	CreateLandmarkCmd.Flags().StringVar(&landmarkTitleFlag, "title", "", "Landmark title")
	CreateLandmarkCmd.Flags().StringVar(&landmarkDescFlag, "description", "", "Short description shown at the stop")
	CreateLandmarkCmd.Flags().StringVar(&landmarkDetailsFlag, "details", "", "Longer anecdote text")
	CreateLandmarkCmd.Flags().StringVar(&landmarkObjectFlag, "spline-object", "", "Name of the matching object in the 3D scene")
	CreateLandmarkCmd.Flags().StringVar(&landmarkPositionFlag, "position", "", "Scene position as x,y,z (optional)")

	CreateLandmarkCmd.MarkFlagRequired("title")
	CreateLandmarkCmd.MarkFlagRequired("spline-object")

	cmd.RootCmd.AddCommand(CreateLandmarkCmd)
}
