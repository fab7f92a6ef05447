package main

import (
	"context"
	"fmt"
	"os"
)

// @title Medication Reminder API
// @version 1.0
// @description Caregiver and elder medication reminders with adherence history.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
