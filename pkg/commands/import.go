package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"geotask/pkg/store"
)

// HandleImportCommand processes -import commands. JSON files produced
// by -export round-trip with ids and creation dates intact; plain text
// files use the date-header / dashed-task format of the txt export.
func HandleImportCommand(s *store.Store, filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	var added int
	trimmed := strings.TrimSpace(string(content))
	if strings.HasPrefix(trimmed, "[") {
		added = importJSON(s, content)
	} else {
		added = importText(s, trimmed)
	}

	fmt.Printf("Successfully imported %d task(s) from %s\n", added, filename)
}

func importJSON(s *store.Store, content []byte) int {
	var tasks []store.TodoItem
	if err := json.Unmarshal(content, &tasks); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	added := 0
	for _, task := range tasks {
		s.Insert(task)
		added++
	}
	return added
}

func importText(s *store.Store, content string) int {
	lines := strings.Split(content, "\n")
	var currentDate time.Time
	var added int

	// Date headers come as DD.MM.YYYY: or YYYY-MM-DD:
	dateRegex := regexp.MustCompile(`^(?:(\d{2})\.(\d{2})\.(\d{4})|(\d{4})-(\d{2})-(\d{2})):?$`)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if dateMatch := dateRegex.FindStringSubmatch(line); dateMatch != nil {
			var day, month, year int
			if dateMatch[1] != "" {
				day, _ = strconv.Atoi(dateMatch[1])
				month, _ = strconv.Atoi(dateMatch[2])
				year, _ = strconv.Atoi(dateMatch[3])
			} else {
				year, _ = strconv.Atoi(dateMatch[4])
				month, _ = strconv.Atoi(dateMatch[5])
				day, _ = strconv.Atoi(dateMatch[6])
			}
			currentDate = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			continue
		}

		if strings.HasPrefix(line, "- ") {
			taskText := strings.TrimPrefix(line, "- ")
			if taskText == "" {
				continue
			}

			// Trailing " @ location" carries the location field.
			title := taskText
			location := ""
			if idx := strings.LastIndex(taskText, " @ "); idx > 0 {
				title = strings.TrimSpace(taskText[:idx])
				location = strings.TrimSpace(taskText[idx+3:])
			}

			due := currentDate
			if due.IsZero() {
				due = time.Now()
			}

			s.Add(title, "", due, location)
			added++
		}
	}
	return added
}
