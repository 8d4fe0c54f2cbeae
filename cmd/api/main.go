package main

import (
	"context"
	"net/http"
	"time"

	"standort-api/internal/config"
	"standort-api/internal/geocoder"
	"standort-api/internal/handler"
	"standort-api/internal/repository"
	"standort-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database file, opened once for the process lifetime
	repo, err := repository.Open(config.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	defer repo.Close()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("cannot prepare database schema")
	}

	// Initialize layers
	resolver := geocoder.NewClient(config.NominatimBaseURL)
	locationService := service.NewLocationService(repo, resolver, time.Duration(config.TimeOffsetHours)*time.Hour)

	locationHandler := handler.NewLocationHandler(locationService)
	adminHandler := handler.NewAdminHandler(locationService, config.AdminKey)

	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/static")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	r.POST("/saveLocation", locationHandler.SaveLocation)
	r.GET("/last-locations", locationHandler.LastLocations)
	r.GET("/download-csv", locationHandler.DownloadCSV)

	r.GET("/admin", adminHandler.Admin)
	r.POST("/admin/login", adminHandler.Login)
	r.POST("/admin/delete", adminHandler.Delete)
	r.POST("/reset", adminHandler.Reset)

	r.Run(config.ServerAddress)
}
