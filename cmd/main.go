package main

import (
	"os"

	"backend/config"
	"backend/logger"
	"backend/routes"
	"backend/utils"
)

func main() {
	logger.Init()
	config.LoadEnv()

	db, err := config.InitDB()
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}

	if os.Getenv("S3_BUCKET") != "" {
		utils.InitS3()
	} else {
		logger.Warn("S3_BUCKET not set, photo uploads disabled")
	}

	r := routes.SetupRouter(routes.BuildDeps(db))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
