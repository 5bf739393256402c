package main

import (
	"fmt"
	"os"

	"github.com/aspira-app/aspira-backend/internal/app"
	"github.com/aspira-app/aspira-backend/internal/utils"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	port := utils.GetEnv("PORT", "8080", a.Log)
	a.Log.Info("Server listening", "port", port)
	if err := a.Run(":" + port); err != nil {
		a.Log.Error("Server failed", "error", err)
	}
}
