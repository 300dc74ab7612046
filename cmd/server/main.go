package main

import (
	"context"
	"log"
	"net/http"

	"github.com/devconnector/backend/internal/config"
	"github.com/devconnector/backend/internal/handlers"
	"github.com/devconnector/backend/internal/services"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must not be empty")
	}

	var (
		userService    services.UserService
		profileService services.ProfileService
		postService    services.PostService
	)

	if cfg.MongoURI != "" {
		ctx := context.Background()

		users, err := services.NewMongoUserService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("users store: %v", err)
		}
		profiles, err := services.NewMongoProfileService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("profiles store: %v", err)
		}
		posts, err := services.NewMongoPostService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("posts store: %v", err)
		}

		userService, profileService, postService = users, profiles, posts
	} else {
		users, err := services.NewMemoryUserService(cfg.DataDir)
		if err != nil {
			log.Fatalf("users store: %v", err)
		}
		profiles, err := services.NewMemoryProfileService(cfg.DataDir)
		if err != nil {
			log.Fatalf("profiles store: %v", err)
		}
		posts, err := services.NewMemoryPostService(cfg.DataDir)
		if err != nil {
			log.Fatalf("posts store: %v", err)
		}

		userService, profileService, postService = users, profiles, posts
		log.Printf("using JSON file storage in %s", cfg.DataDir)
	}

	accountService := services.NewAccountService(userService, profileService)
	githubClient := services.NewGithubClient(cfg.GithubClientID, cfg.GithubClientSecret)

	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileService, accountService, githubClient)
	postHandler := handlers.NewPostHandler(postService, userService)

	router := handlers.NewRouter(cfg.JWTSecret, authHandler, profileHandler, postHandler)

	log.Printf("API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
