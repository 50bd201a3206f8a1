package cli

import (
	"flag"

	"geotask/pkg/commands"
	"geotask/pkg/store"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	Verbose    bool

	// Task operations
	AddTask  string
	DateFlag string
	AtFlag   string
	ListFlag bool

	// Database operations
	DatabaseCmd string
	BeforeFlag  string
	YesFlag     bool

	// Import/Export operations
	ImportFile string
	ExportFile string
	TypeFlag   string
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs() *Args {
	args := &Args{}

	flag.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	flag.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")

	// Task operations
	flag.StringVar(&args.AddTask, "add", "", "Add a new task")
	flag.StringVar(&args.DateFlag, "date", "", "Due date for task (YYYY-MM-DD format)")
	flag.StringVar(&args.AtFlag, "at", "", "Location for task (free text)")
	flag.BoolVar(&args.ListFlag, "list", false, "List tasks and exit")

	// Database operations
	flag.StringVar(&args.DatabaseCmd, "database", "", "Database command (purge)")
	flag.StringVar(&args.BeforeFlag, "before", "", "Purge tasks due before this date (YYYY-MM-DD)")
	flag.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")

	// Import/Export operations
	flag.StringVar(&args.ImportFile, "import", "", "Import tasks from file")
	flag.StringVar(&args.ExportFile, "export", "", "Export tasks to file")
	flag.StringVar(&args.TypeFlag, "type", "json", "Export file type (json, txt)")

	flag.Parse()
	return args
}

// HandleCommands processes CLI commands and returns true if a command was handled
func HandleCommands(s *store.Store, args *Args) bool {
	if args.AddTask != "" {
		commands.HandleAddTask(s, args.AddTask, args.DateFlag, args.AtFlag)
		return true
	}

	if args.ListFlag {
		commands.HandleListCommand(s)
		return true
	}

	if args.DatabaseCmd != "" {
		commands.HandleDatabaseCommand(s, args.DatabaseCmd, args.BeforeFlag, args.YesFlag)
		return true
	}

	if args.ImportFile != "" {
		commands.HandleImportCommand(s, args.ImportFile)
		return true
	}

	if args.ExportFile != "" {
		commands.HandleExportCommand(s, args.ExportFile, args.TypeFlag)
		return true
	}

	// No CLI command was handled
	return false
}
