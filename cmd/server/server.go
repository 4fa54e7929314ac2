package main

import "github.com/cwngan/cu2m-backend/internal"

func main() {
	internal.Init()
}
