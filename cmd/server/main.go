package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"equiploan/internal/booking"
	"equiploan/internal/database"
	"equiploan/internal/entity"
	"equiploan/internal/handler"
	"equiploan/internal/midlleware"
	"equiploan/internal/repository"
)

func main() {
	// .env нужен только для локального запуска, без него тоже работаем
	godotenv.Load()

	err := database.InitDB()
	if err != nil {
		fmt.Printf("Ошибка инициализации БД: %v\n", err)
		return
	}
	defer database.CloseDB()

	userRepo := repository.NewUserRepository(database.DB)

	if err := userRepo.SeedDefaultUsers(); err != nil {
		fmt.Printf("Ошибка заведения стартовых пользователей: %v\n", err)
		return
	}

	store := repository.NewStore(database.DB)
	svc := booking.NewService(store)

	loginHandler := handler.NewLoginHandler(userRepo)
	equipmentHandler := handler.NewEquipmentHandler(svc)
	requestHandler := handler.NewRequestHandler(svc)
	userHandler := handler.NewUserHandler(userRepo)
	indexHandler := handler.NewIndexHandler()

	resolve := middleware.ResolvePrincipal(userRepo)
	auth := middleware.RequireAuth(userRepo)
	adminOnly := middleware.RequireRoles([]entity.Role{entity.RoleAdmin})

	mux := http.NewServeMux()

	mux.HandleFunc("/", indexHandler.IndexHandler)
	mux.HandleFunc("/api/login", loginHandler.Login)
	mux.HandleFunc("/api/logout", loginHandler.Logout)

	// Список оборудования публичный, поэтому тут только resolve:
	// создание внутри само требует принципала.
	mux.Handle("/api/equipment", resolve(http.HandlerFunc(equipmentHandler.Collection)))
	mux.Handle("/api/equipment/", auth(http.HandlerFunc(equipmentHandler.Delete)))

	mux.Handle("/api/requests", auth(http.HandlerFunc(requestHandler.Collection)))
	mux.Handle("/api/requests/", auth(http.HandlerFunc(requestHandler.SetStatus)))

	mux.Handle("/api/users", auth(adminOnly(http.HandlerFunc(userHandler.Create))))

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	fmt.Println("Сервер запустился на порту " + port)

	err = http.ListenAndServe(":"+port, mux)
	if err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		os.Exit(1)
	}
}
