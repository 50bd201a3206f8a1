package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"geotask/pkg/store"
)

// HandleDatabaseCommand processes -database commands
func HandleDatabaseCommand(s *store.Store, cmd, beforeStr string, skipConfirm bool) {
	if cmd != "purge" {
		fmt.Printf("Unknown database command: %s\n", cmd)
		os.Exit(1)
	}

	var cutoff time.Time
	if beforeStr != "" {
		var err error
		cutoff, err = time.Parse("2006-01-02", beforeStr)
		if err != nil {
			fmt.Printf("Error parsing date: %v\n", err)
			os.Exit(1)
		}
	}

	if !skipConfirm {
		prompt := "Are you sure you want to delete all tasks? (y/N): "
		if !cutoff.IsZero() {
			prompt = fmt.Sprintf("Are you sure you want to delete tasks due before %s? (y/N): ", beforeStr)
		}
		fmt.Print(prompt)
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	removed := s.DeleteWhere(func(it store.TodoItem) bool {
		if cutoff.IsZero() {
			return true
		}
		return it.DueDate.Before(cutoff)
	})

	fmt.Printf("Successfully deleted %d task(s)\n", removed)
}
