// @title           EventStaff API
// @version         1.0
// @description     Event staffing marketplace: clients post shifts, staff apply, check in and get paid.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "eventstaff_backend/docs"
	"eventstaff_backend/internal/app"
)

func main() {
	app.Run()
}
