package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	log.SetPrefix("hc/health-coach-go-api: ")
	log.SetFlags(0)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load config: %v\n", err)
		os.Exit(1)
	}

	var st store
	if cfg.DBURL != "" {
		pool, err := getDBPool(context.Background(), cfg.DBURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("DB pool ready!")
		st = newPGStore(pool)
	} else {
		// No DB_URL: run on the in-memory store with a seeded demo profile.
		// Handy for UI development; all data is lost on restart.
		log.Printf("DB_URL not set, using in-memory store")
		mem := newMemStore()
		seedDemoUser(mem)
		st = mem
	}

	h := &Handler{store: st, cfg: cfg}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	router.Use(requestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))
	h.registerRoutes(router)

	router.Run(":" + cfg.Port)
}

// seedDemoUser creates the default profile the dashboard expects when running
// without a database.
func seedDemoUser(st store) {
	_, err := st.CreateUser(context.Background(), user{
		Username:      "johndoe",
		Password:      "password123",
		Email:         "john.doe@example.com",
		Name:          "John Doe",
		Age:           32,
		Height:        178,
		Weight:        78,
		TargetWeight:  72.5,
		ActivityLevel: "Moderately Active",
		FitnessGoal:   "Lose Weight",
	})
	if err != nil {
		log.Printf("seed demo user: %v", err)
	}
}
