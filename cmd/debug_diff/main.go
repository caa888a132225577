package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fontdb/core/artifact"
	"fontdb/core/models"
	"fontdb/feature/changelog"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Prints the change set between two database files as JSON, followed by the
// release notes, without touching any changelog file.
func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <previous.json> <current.json>", filepath.Base(os.Args[0]))
	}

	fs := afero.NewOsFs()
	previous, err := load(fs, os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	current, err := load(fs, os.Args[2])
	if err != nil {
		log.Fatal(err)
	}

	cs, err := changelog.NewDiffer(zap.NewNop()).Diff(context.Background(), previous, current)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== CHANGE SET ===")
	data, err := artifact.Encode(cs, artifact.Indented)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))

	fmt.Println("\n=== RELEASE NOTES ===")
	fmt.Println(changelog.ReleaseNotes(cs))
}

func load(fs afero.Fs, path string) (*models.FontDatabase, error) {
	ws := artifact.NewWorkspace(fs, filepath.Dir(path))
	var db models.FontDatabase
	if err := ws.ReadJSON(filepath.Base(path), &db); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &db, nil
}
