package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"reportbot/backend/internal/models"
	"reportbot/backend/internal/report"
	"reportbot/backend/internal/storage"
)

// Offline maintenance CLI over the same JSON store the bot writes to.
// Run it only while the bot is stopped; there is no cross-process locking.
func main() {
	path := os.Getenv("REPORTS_FILE")
	if path == "" {
		path = "data/reports.json"
	}
	store, err := storage.NewService(path)
	if err != nil {
		log.Fatalf("Failed to open report store: %v", err)
	}
	svc := report.NewService(store)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin list <guild_id> [status]")
			os.Exit(1)
		}
		guildID := os.Args[2]
		status := models.StatusAll
		if len(os.Args) > 3 {
			status = os.Args[3]
		}
		if !models.ValidStatusFilter(status) {
			fmt.Println("Unknown status. Use: pendiente, resuelto, descartado or todos.")
			os.Exit(1)
		}
		reports, err := store.ListByStatus(guildID, status)
		if err != nil {
			log.Fatalf("Error listing reports: %v", err)
		}
		if len(reports) == 0 {
			fmt.Println("No reports found.")
			return
		}
		for _, r := range reports {
			fmt.Printf("#%d\t%s -> %s\t[%s]\t%s\t%s\n",
				r.ID, r.ReportedBy, r.ReportedUser, r.Status,
				r.Timestamp.Format("2006-01-02 15:04"), r.Reason)
		}
	case "resolve":
		guildID, id := reportArgs()
		if err := svc.Resolve(guildID, id); err != nil {
			log.Fatalf("Error resolving report: %v", err)
		}
		fmt.Printf("Report %d has been resolved.\n", id)
	case "dismiss":
		guildID, id := reportArgs()
		if err := svc.Dismiss(guildID, id); err != nil {
			log.Fatalf("Error dismissing report: %v", err)
		}
		fmt.Printf("Report %d has been dismissed.\n", id)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func reportArgs() (string, int) {
	if len(os.Args) != 4 {
		fmt.Printf("Usage: admin %s <guild_id> <report_id>\n", os.Args[1])
		os.Exit(1)
	}
	id, err := strconv.Atoi(os.Args[3])
	if err != nil {
		fmt.Println("Invalid report ID. Please provide an integer.")
		os.Exit(1)
	}
	return os.Args[2], id
}
