package cli

import (
	"fmt"
	"log"

	"github.com/ethanmoreau/bikejourney/cmd"
	"github.com/ethanmoreau/bikejourney/internal/config"
	"github.com/ethanmoreau/bikejourney/internal/repository"
	"github.com/ethanmoreau/bikejourney/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var statsDaysFlag int

// StatsCmd représente la commande 'stats'
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Affiche les statistiques de visite sur une fenêtre glissante.",
	Long: `Affiche le même agrégat que l'endpoint /analytics : la série
journalière, les visites par landmark, et les compteurs de la fenêtre.`,
	Run: runStats,
}

func init() {
	StatsCmd.Flags().IntVar(&statsDaysFlag, "days", 0, "Window size in days (default: configured value)")

	cmd.RootCmd.AddCommand(StatsCmd)
}

// runStats exécute la logique pour la commande stats
func runStats(cobraCmd *cobra.Command, args []string) {
	// Charger la configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Échec du chargement de la configuration : %v", err)
	}

	// Initialiser la base de données
	db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("Échec de la connexion à la base de données : %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Échec de l'obtention de la base de données SQL sous-jacente: %v", err)
	}
	defer sqlDB.Close()

	// Initialiser les repositories et services nécessaires
	analyticsRepo := repository.NewAnalyticsRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	analyticsService := services.NewAnalyticsService(
		analyticsRepo, visitRepo, visitorRepo, cfg.Analytics.DefaultWindowDays,
	)

	report, err := analyticsService.Query(statsDaysFlag)
	if err != nil {
		log.Fatalf("Error retrieving statistics: %v", err)
	}

	// Afficher les résultats
	fmt.Printf("Total de visites: %d\n", report.TotalVisits)
	fmt.Printf("Nouveaux visiteurs: %d\n", report.UniqueVisitors)

	fmt.Println("\nSérie journalière:")
	if len(report.Analytics) == 0 {
		fmt.Println("  (aucune visite sur la fenêtre)")
	}
	for _, day := range report.Analytics {
		fmt.Printf("  %s  visites=%d  visiteurs uniques=%d\n",
			day.Date.Format("2006-01-02"), day.TotalVisits, day.UniqueVisitors)
	}

	fmt.Println("\nVisites par landmark:")
	if len(report.LandmarkStats) == 0 {
		fmt.Println("  (aucun arrêt sur la fenêtre)")
	}
	for _, stat := range report.LandmarkStats {
		fmt.Printf("  %-20s %d\n", stat.LandmarkID, stat.Count)
	}
}
