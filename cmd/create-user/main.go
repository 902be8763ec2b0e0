// CLI tool to create a user profile with a bcrypt-hashed password.
// Usage: go run ./cmd/create-user (from the repo root)
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label + ": ")
	value, _ := reader.ReadString('\n')
	return strings.TrimSpace(value)
}

func promptFloat(reader *bufio.Reader, label string) float64 {
	for {
		v, err := strconv.ParseFloat(prompt(reader, label), 64)
		if err == nil {
			return v
		}
		fmt.Println("  not a number, try again")
	}
}

func promptInt(reader *bufio.Reader, label string) int {
	for {
		v, err := strconv.Atoi(prompt(reader, label))
		if err == nil {
			return v
		}
		fmt.Println("  not a number, try again")
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)

	username := prompt(reader, "Username")
	email := prompt(reader, "Email")
	name := prompt(reader, "Full name")
	password := prompt(reader, "Password")
	age := promptInt(reader, "Age (years)")
	height := promptFloat(reader, "Height (cm)")
	weight := promptFloat(reader, "Weight (kg)")
	targetWeight := promptFloat(reader, "Target weight (kg)")
	activityLevel := prompt(reader, "Activity level (Sedentary / Lightly Active / Moderately Active / Very Active / Extremely Active)")
	fitnessGoal := prompt(reader, "Fitness goal (Maintain Weight / Lose Weight / Gain Muscle / Improve Endurance)")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	var userID int
	err = conn.QueryRow(context.Background(),
		`INSERT INTO users (username, password, email, name, age, height, weight, target_weight, activity_level, fitness_goal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		username, string(hash), email, name, age, height, weight, targetWeight, activityLevel, fitnessGoal,
	).Scan(&userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:       %d\n", userID)
	fmt.Printf("  Username: %s\n", username)
}
