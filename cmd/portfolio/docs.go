package main

//go:generate swag init -g cmd/portfolio/main.go -o docs

// @title           Portfolio Tracker API
// @version         0.1.0
// @description     Trade entry, holdings views, and quote refresh.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
