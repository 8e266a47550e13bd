package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStageResumeDocuments(t *testing.T) {
	t.Run("same-named documents stay distinct", func(t *testing.T) {
		docs := []ResumeDocument{
			{Filename: "resume.txt", Content: "first candidate"},
			{Filename: "resume.txt", Content: "second candidate"},
		}

		paths, cleanup, err := stageResumeDocuments(docs)
		if err != nil {
			t.Fatalf("Failed to stage documents: %v", err)
		}
		defer cleanup()

		if len(paths) != 2 {
			t.Fatalf("Expected 2 staged paths, got %d", len(paths))
		}
		if paths[0] == paths[1] {
			t.Fatalf("Expected distinct staged paths, both are %s", paths[0])
		}

		for i, expected := range []string{"first candidate", "second candidate"} {
			content, err := os.ReadFile(paths[i])
			if err != nil {
				t.Fatalf("Failed to read staged document %d: %v", i, err)
			}
			if string(content) != expected {
				t.Errorf("Expected document %d content '%s', got '%s'", i, expected, content)
			}
		}
	})

	t.Run("missing filename gets a generated name", func(t *testing.T) {
		paths, cleanup, err := stageResumeDocuments([]ResumeDocument{{Content: "no name"}})
		if err != nil {
			t.Fatalf("Failed to stage document: %v", err)
		}
		defer cleanup()

		if len(paths) != 1 {
			t.Fatalf("Expected 1 staged path, got %d", len(paths))
		}
		if !strings.HasSuffix(paths[0], ".txt") {
			t.Errorf("Expected generated name with .txt extension, got %s", paths[0])
		}
	})

	t.Run("unsupported extension is normalized", func(t *testing.T) {
		paths, cleanup, err := stageResumeDocuments([]ResumeDocument{
			{Filename: "resume.docx", Content: "body"},
		})
		if err != nil {
			t.Fatalf("Failed to stage document: %v", err)
		}
		defer cleanup()

		if !strings.HasSuffix(paths[0], ".txt") {
			t.Errorf("Expected staged name normalized to .txt, got %s", paths[0])
		}
	})

	t.Run("path components are stripped from filenames", func(t *testing.T) {
		paths, cleanup, err := stageResumeDocuments([]ResumeDocument{
			{Filename: "../../etc/passwd.txt", Content: "body"},
		})
		if err != nil {
			t.Fatalf("Failed to stage document: %v", err)
		}
		defer cleanup()

		if filepath.Base(paths[0]) != "1_passwd.txt" {
			t.Errorf("Expected sanitized name '1_passwd.txt', got %s", filepath.Base(paths[0]))
		}
	})

	t.Run("cleanup removes the scratch directory", func(t *testing.T) {
		paths, cleanup, err := stageResumeDocuments([]ResumeDocument{
			{Filename: "resume.txt", Content: "body"},
		})
		if err != nil {
			t.Fatalf("Failed to stage document: %v", err)
		}

		cleanup()

		if _, err := os.Stat(filepath.Dir(paths[0])); !os.IsNotExist(err) {
			t.Error("Expected scratch directory to be removed by cleanup")
		}
	})
}
