package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	coachrecruitment "academy-assistant/internal/agents/recruitment/coach-recruitment"
	playerscouting "academy-assistant/internal/agents/recruitment/player-scouting"
	"academy-assistant/internal/intake"
	"academy-assistant/internal/models"
	"academy-assistant/pkg/registry"
)

var registryPath string

func main() {
	keywordCmd := flag.NewFlagSet("keyword", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	for _, fs := range []*flag.FlagSet{keywordCmd, updateCmd, validateCmd} {
		fs.StringVar(&registryPath, "path", "configs/pathways.json", "Path to pathways file")
	}

	// Keyword command flags
	idKeyword := keywordCmd.String("id", "", "Pathway ID (player or coach)")
	word := keywordCmd.String("word", "", "Selection keyword to add")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Pathway ID to update")
	field := updateCmd.String("field", "", "Field to update (displayName, description, indicator, userType)")
	value := updateCmd.String("value", "", "New value for the field")

	if len(os.Args) < 2 {
		help(os.Stdout)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "keyword":
		keywordCmd.Parse(os.Args[2:])
		if *idKeyword == "" || *word == "" {
			fmt.Println("Error: id and word are required for keyword.")
			keywordCmd.Usage()
			os.Exit(1)
		}
		if err := addKeyword(registryPath, *idKeyword, *word); err != nil {
			fmt.Printf("Error adding keyword: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added keyword %q to pathway %s\n", *word, *idKeyword)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updatePathway(registryPath, *idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating pathway: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated pathway %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		n, err := validateRegistry(registryPath)
		if err != nil {
			fmt.Printf("Pathway validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Pathway validation passed. Found %d pathways.\n", n)

	case "help":
		fallthrough
	default:
		help(os.Stdout)
	}
}

func addKeyword(path, id, word string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	word = strings.ToLower(strings.TrimSpace(word))
	def, err := find(reg, id)
	if err != nil {
		return err
	}
	for _, existing := range def.Keywords {
		if existing == word {
			return fmt.Errorf("pathway %s already has keyword %q", id, word)
		}
	}
	def.Keywords = append(def.Keywords, word)

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, path)
}

func updatePathway(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	def, err := find(reg, id)
	if err != nil {
		return err
	}
	switch field {
	case "displayName":
		def.DisplayName = value
	case "description":
		def.Description = value
	case "indicator":
		def.Indicator = value
	case "userType":
		if models.ParseUserType(value) == models.UserTypeUnknown {
			return fmt.Errorf("invalid userType: %s", value)
		}
		def.UserType = value
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, path)
}

// validateRegistry checks required fields and that every pathway binds to a schema.
func validateRegistry(path string) (int, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load registry: %w", err)
	}

	for _, def := range reg.Pathways {
		if def.DisplayName == "" {
			return 0, fmt.Errorf("pathway %s missing required field: displayName", def.ID)
		}
		if def.Indicator == "" {
			return 0, fmt.Errorf("pathway %s missing required field: indicator", def.ID)
		}
		if models.ParseUserType(def.UserType) == models.UserTypeUnknown {
			return 0, fmt.Errorf("pathway %s has invalid userType %q", def.ID, def.UserType)
		}
	}

	_, err = registry.New(reg, map[string]*intake.Schema{
		playerscouting.SchemaName:   playerscouting.NewSchema(nil),
		coachrecruitment.SchemaName: coachrecruitment.NewSchema(nil),
	})
	if err != nil {
		return 0, err
	}
	return len(reg.Pathways), nil
}

func find(reg *registry.PathwayRegistry, id string) (*registry.PathwayDefinition, error) {
	for i := range reg.Pathways {
		if reg.Pathways[i].ID == id {
			return &reg.Pathways[i], nil
		}
	}
	return nil, fmt.Errorf("pathway with ID %s not found", id)
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *registry.PathwayRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

const usage = `
Usage: pathway-updater <command> [flags]

Commands:
  keyword   Add a selection keyword to a pathway
  update    Update a pathway's field
  validate  Validate the pathways file
  help      Show this help message

Examples:
  pathway-updater keyword -id player -word "striker trials"
  pathway-updater update -id coach -field indicator -value "👔 Coach Recruitment Active."
  pathway-updater validate -path configs/pathways.json

Use 'pathway-updater <command> -h' for more information about a command.
`

func help(w io.Writer) {
	fmt.Fprint(w, usage)
}
