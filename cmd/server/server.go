package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethanmoreau/bikejourney/cmd"
	"github.com/ethanmoreau/bikejourney/internal/api"
	"github.com/ethanmoreau/bikejourney/internal/config"
	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/monitor"
	"github.com/ethanmoreau/bikejourney/internal/repository"
	"github.com/ethanmoreau/bikejourney/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RunServerCmd représente la commande 'run-server' de Cobra.
// C'est le point d'entrée pour lancer le serveur de l'application.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Lance le serveur API du site bike journey.",
	Long: `Cette commande initialise la base de données, configure les APIs
(landmarks, visiteurs, visites, livre d'or, analytics), démarre le
moniteur de modération du livre d'or, puis lance le serveur HTTP.`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		// Charger la configuration
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Échec du chargement de la configuration : %v", err)
		}

		// Initialiser la base de données. Les références de landmark
		// sont souples (un delete laisse les visites derrière), donc
		// pas de contraintes de clés étrangères à la migration.
		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			log.Fatalf("Échec de la connexion à la base de données : %v", err)
		}

		// Migration automatique des modèles
		if err := db.AutoMigrate(
			&models.Landmark{},
			&models.Visitor{},
			&models.Visit{},
			&models.GuestbookEntry{},
			&models.Analytics{},
		); err != nil {
			log.Fatalf("Échec de la migration de la base de données : %v", err)
		}

		// Initialiser les repositories
		landmarkRepo := repository.NewLandmarkRepository(db)
		visitorRepo := repository.NewVisitorRepository(db)
		visitRepo := repository.NewVisitRepository(db)
		guestbookRepo := repository.NewGuestbookRepository(db)
		analyticsRepo := repository.NewAnalyticsRepository(db)

		log.Println("Repositories initialisés.")

		// Initialiser les services métiers
		landmarkService := services.NewLandmarkService(landmarkRepo)
		visitorService := services.NewVisitorService(visitorRepo)
		visitService := services.NewVisitService(visitRepo, visitorRepo, landmarkRepo)
		guestbookService := services.NewGuestbookService(
			guestbookRepo, landmarkRepo,
			cfg.Guestbook.MaxEntries, cfg.Guestbook.MaxNameLength, cfg.Guestbook.MaxMessageLength,
		)
		analyticsService := services.NewAnalyticsService(
			analyticsRepo, visitRepo, visitorRepo, cfg.Analytics.DefaultWindowDays,
		)

		log.Println("Services métiers initialisés.")

		// Initialiser et lancer le moniteur de modération du livre d'or.
		monitorInterval := time.Duration(cfg.Monitor.IntervalMinutes) * time.Minute
		moderationMonitor := monitor.NewModerationMonitor(guestbookRepo, monitorInterval)
		go moderationMonitor.Start()
		log.Printf("Moniteur de modération démarré avec un intervalle de %v.", monitorInterval)

		// Configurer le routeur Gin et les handlers API.
		router := gin.Default()
		api.SetupRoutes(router, landmarkService, visitorService, visitService, guestbookService, analyticsService)

		log.Println("Routes API configurées.")

		// Créer le serveur HTTP Gin
		serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
		srv := &http.Server{
			Addr:    serverAddr,
			Handler: router,
		}

		// Démarrer le serveur Gin dans une goroutine pour ne pas bloquer.
		go func() {
			log.Printf("Démarrage du serveur sur %s", serverAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Échec du démarrage du serveur : %v", err)
			}
		}()

		// Gérer l'arrêt propre du serveur (graceful shutdown).
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		<-quit
		log.Println("Signal d'arrêt reçu. Arrêt du serveur...")

		// Laisser le temps aux requêtes en cours de se terminer.
		time.Sleep(5 * time.Second)

		log.Println("Serveur arrêté proprement.")
	},
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
