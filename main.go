package main

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"never-have-i-ever-backend/internal/config"
	"never-have-i-ever-backend/internal/handlers"
	"never-have-i-ever-backend/internal/seed"
	"never-have-i-ever-backend/internal/services"
	_ "never-have-i-ever-backend/migrations"
)

func main() {
	pb := pocketbase.New()

	cfg := config.Load()
	cfg.ConfigureLogging()
	pb.Store().Set("cfg", cfg)

	pb.RootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Load the starter question bank",
		Run: func(cmd *cobra.Command, args []string) {
			if err := pb.Bootstrap(); err != nil {
				logrus.WithError(err).Fatal("bootstrap failed")
			}
			if err := seed.Apply(pb); err != nil {
				logrus.WithError(err).Fatal("seeding failed")
			}
		},
	})

	metrics := services.NewMetrics()
	dispatcher := services.NewDispatcher(config.RoomWorkerIdleTimeout)
	hub := services.NewHub(metrics)

	pb.OnServe().BindFunc(func(se *core.ServeEvent) error {
		store := services.NewRoomStore(pb)
		sessions := services.NewGameSessionController(store, dispatcher)
		broadcaster := handlers.NewBroadcaster(hub, sessions, metrics)

		roomHandlers := handlers.NewRoomHandlers(sessions, store, broadcaster, cfg)
		gameHandlers := handlers.NewGameHandlers(sessions, broadcaster)
		userHandlers := handlers.NewUserHandlers(store)
		questionHandlers := handlers.NewQuestionHandlers(store)
		leaderboardHandlers := handlers.NewLeaderboardHandlers(store)
		metricsHandlers := handlers.NewMetricsHandlers(metrics, dispatcher)
		wsHandler := handlers.NewWSHandler(hub, sessions, store, broadcaster, cfg)

		go hub.Run()

		// Users
		se.Router.POST("/api/users", userHandlers.CreateUser)
		se.Router.GET("/api/users/{id}", userHandlers.GetUser)
		se.Router.PUT("/api/users/{id}", userHandlers.UpdateUser)

		// Questions
		se.Router.GET("/api/questions", questionHandlers.ListQuestions)

		// Rooms
		se.Router.POST("/api/rooms", roomHandlers.CreateRoom)
		se.Router.GET("/api/rooms", roomHandlers.ListRooms)
		se.Router.GET("/api/rooms/passcode/{passcode}", roomHandlers.GetRoomByPasscode)
		se.Router.GET("/api/rooms/{id}", roomHandlers.GetRoom)
		se.Router.GET("/api/rooms/{id}/qr", roomHandlers.RoomQR)
		se.Router.POST("/api/rooms/{id}/join", roomHandlers.JoinRoom)
		se.Router.POST("/api/rooms/{id}/leave", roomHandlers.LeaveRoom)
		se.Router.POST("/api/rooms/{id}/start", gameHandlers.StartGame)
		se.Router.POST("/api/rooms/{id}/answers", gameHandlers.SubmitAnswer)
		se.Router.POST("/api/rooms/{id}/next-round", gameHandlers.NextRound)

		// Leaderboard
		se.Router.GET("/api/leaderboard", leaderboardHandlers.GetLeaderboard)
		se.Router.POST("/api/leaderboard/reset-daily", leaderboardHandlers.ResetDaily)

		// Observability
		se.Router.GET("/api/metrics", metricsHandlers.GetMetrics)
		se.Router.GET("/api/health", metricsHandlers.GetHealth)

		// Realtime
		se.Router.GET("/ws/rooms/{id}", wsHandler.HandleWebSocket)

		logrus.Info("routes registered")
		return se.Next()
	})

	if err := pb.Start(); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
