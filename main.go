package main

import "restaurant-backend/cmd/restaurant"

func main() {
	restaurant.Run()
}
