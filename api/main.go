package main

import (
	"github.com/joho/godotenv"

	"github.com/Achu-shankar/Syllabi-sub002/api/cmd/syllabi"
)

func main() {
	_ = godotenv.Load()
	syllabi.Execute()
}
